package geminicli

import (
	"context"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

type Lyria struct {
	runner cli.Runner
}

// GenerateMusic runs `lyria generate-music`. With a bucket or local path the
// CLI persists the audio and nil is returned. A bucket takes precedence over
// the local path.
func (l *Lyria) GenerateMusic(ctx context.Context, opts gemini.MusicOptions) ([]byte, error) {
	localPath := opts.LocalPath
	if opts.OutputGCSBucket != nil && *opts.OutputGCSBucket != "" {
		localPath = nil
	}

	args := cli.NewArgs("lyria", "generate-music").
		Flag("prompt", opts.Prompt).
		String("negative-prompt", opts.NegativePrompt).
		Int("seed", opts.Seed).
		Int("sample-count", opts.SampleCount).
		String("output-gcs-bucket", opts.OutputGCSBucket).
		String("file-name", opts.FileName).
		String("local-path", localPath).
		String("model-id", opts.ModelID)

	if opts.HasDestination() {
		_, err := l.runner.Run(ctx, args.Build())
		return nil, err
	}
	return runToFile(ctx, l.runner, args, "lyria", ".wav")
}
