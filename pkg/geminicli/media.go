package geminicli

import (
	"context"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

// LegacyMedia covers the original single-shot generate-image, generate-video
// and generate-pdf subcommands. Each writes to a temp file that is read back
// and removed.
type LegacyMedia struct {
	runner cli.Runner
}

func (m *LegacyMedia) GenerateImage(ctx context.Context, opts gemini.ImageOptions) ([]byte, error) {
	args := cli.NewArgs("generate-image").
		Flag("prompt", opts.Prompt).
		String("size", opts.Size)
	return runToFile(ctx, m.runner, args, "gemini-output", ".png")
}

func (m *LegacyMedia) GenerateVideo(ctx context.Context, opts gemini.LegacyVideoOptions) ([]byte, error) {
	args := cli.NewArgs("generate-video").
		Flag("prompt", opts.Prompt).
		Int("duration", opts.Duration)
	return runToFile(ctx, m.runner, args, "gemini-output", ".mp4")
}

func (m *LegacyMedia) GeneratePDF(ctx context.Context, opts gemini.PDFOptions) ([]byte, error) {
	args := cli.NewArgs("generate-pdf").
		Flag("content", opts.Content).
		String("template", opts.Template)
	return runToFile(ctx, m.runner, args, "gemini-output", ".pdf")
}

// runToFile appends --output <temp> to args, runs the CLI and returns the bytes
// it wrote there.
func runToFile(ctx context.Context, runner cli.Runner, args *cli.Args, prefix, ext string) ([]byte, error) {
	output := cli.TempPath(prefix, ext)
	defer cli.Remove(ctx, output)

	args.Flag("output", output)
	if _, err := runner.Run(ctx, args.Build()); err != nil {
		return nil, err
	}
	return cli.ReadAndRemove(ctx, output)
}
