package geminicli

import (
	"context"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

// Veo always writes to a bucket; a local copy is made only when an output
// directory is given.
type Veo struct {
	runner cli.Runner
}

func (v *Veo) TextToVideo(ctx context.Context, opts gemini.VideoOptions) (*gemini.VideoResult, error) {
	args := cli.NewArgs("veo", "t2v").
		Flag("prompt", opts.Prompt).
		Flag("bucket", opts.Bucket).
		String("model", opts.Model).
		Int("num-videos", opts.NumVideos).
		String("aspect-ratio", opts.AspectRatio).
		Int("duration", opts.Duration).
		String("output-directory", opts.OutputDirectory)

	return v.run(ctx, args, opts.OutputDirectory)
}

func (v *Veo) ImageToVideo(ctx context.Context, opts gemini.ImageToVideoOptions) (*gemini.VideoResult, error) {
	args := cli.NewArgs("veo", "i2v").
		Flag("image-uri", opts.ImageURI).
		Flag("bucket", opts.Bucket).
		String("prompt", opts.Prompt).
		String("mime-type", opts.MIMEType).
		String("model", opts.Model).
		Int("num-videos", opts.NumVideos).
		String("aspect-ratio", opts.AspectRatio).
		Int("duration", opts.Duration).
		String("output-directory", opts.OutputDirectory)

	return v.run(ctx, args, opts.OutputDirectory)
}

func (v *Veo) run(ctx context.Context, args *cli.Args, outputDirectory *string) (*gemini.VideoResult, error) {
	out, err := v.runner.Run(ctx, args.Build())
	if err != nil {
		return nil, err
	}

	result := &gemini.VideoResult{
		Paths:   []string{},
		GCSURIs: gemini.GCSURIs(out),
	}
	if outputDirectory != nil && *outputDirectory != "" {
		result.Paths = gemini.SavedPaths(out)
	}
	return result, nil
}
