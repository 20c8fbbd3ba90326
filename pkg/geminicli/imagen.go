package geminicli

import (
	"context"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

type Imagen struct {
	runner cli.Runner
}

// TextToImage runs `imagen t2i`. With a destination the CLI persists the images
// and reports where; otherwise it prints them as data URIs.
func (i *Imagen) TextToImage(ctx context.Context, opts gemini.ImagenOptions) (*gemini.ImagenResult, error) {
	args := cli.NewArgs("imagen", "t2i").
		Flag("prompt", opts.Prompt).
		String("model", opts.Model).
		Int("num-images", opts.NumImages).
		String("aspect-ratio", opts.AspectRatio).
		String("gcs-bucket-uri", opts.GCSBucketURI).
		String("output-directory", opts.OutputDirectory)

	out, err := i.runner.Run(ctx, args.Build())
	if err != nil {
		return nil, err
	}

	if opts.HasDestination() {
		return &gemini.ImagenResult{Paths: gemini.PersistedImagePaths(out)}, nil
	}

	images, err := gemini.InlineImages(out)
	if err != nil {
		return nil, err
	}
	return &gemini.ImagenResult{Images: images}, nil
}
