package geminicli

import (
	"context"
	"fmt"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

// TextDefaults are applied to a generation request for every field it leaves unset.
type TextDefaults struct {
	Model       string
	Temperature *float64
	MaxTokens   *int
}

type TextGenerator struct {
	runner   cli.Runner
	defaults TextDefaults
}

func NewTextGenerator(runner cli.Runner, defaults TextDefaults) *TextGenerator {
	return &TextGenerator{runner: runner, defaults: defaults}
}

// GenerateText runs `generate`. Images and documents are written to temp files
// that are removed once the CLI has exited, whatever the outcome.
func (t *TextGenerator) GenerateText(ctx context.Context, opts gemini.GenerationOptions) (string, error) {
	temperature := opts.Temperature
	if temperature == nil {
		temperature = t.defaults.Temperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens == nil {
		maxTokens = t.defaults.MaxTokens
	}

	args := cli.NewArgs("generate").
		String("model", &t.defaults.Model).
		Float("temperature", temperature).
		Int("max-tokens", maxTokens).
		String("system", &opts.SystemPrompt)

	var cleanups []func()
	defer func() {
		for _, cleanup := range cleanups {
			cleanup()
		}
	}()

	for _, image := range opts.Images {
		path, cleanup, err := cli.Materialize(ctx, "gemini-image", ".png", image)
		cleanups = append(cleanups, cleanup)
		if err != nil {
			return "", fmt.Errorf("failed to stage image: %w", err)
		}
		args.Flag("image", path)
	}

	for _, doc := range opts.Documents {
		path, cleanup, err := cli.Materialize(ctx, "gemini-doc", doc.Extension(), doc.Content)
		cleanups = append(cleanups, cleanup)
		if err != nil {
			return "", fmt.Errorf("failed to stage document: %w", err)
		}
		args.Flag("file", path)
	}

	args.Flag("prompt", opts.Prompt)

	return t.runner.Run(ctx, args.Build())
}

// SearchWeb runs `search`. Output that is not a JSON result list is wrapped
// into a single result.
func (t *TextGenerator) SearchWeb(ctx context.Context, query string, numResults *int) ([]gemini.SearchResult, error) {
	args := cli.NewArgs("search").
		Flag("query", query).
		Int("num-results", numResults)

	out, err := t.runner.Run(ctx, args.Build())
	if err != nil {
		return nil, err
	}
	return gemini.ParseSearchResults(out), nil
}

// AnalyzeDocument asks the CLI about a single attached document.
func (t *TextGenerator) AnalyzeDocument(ctx context.Context, doc gemini.Document, prompt string) (string, error) {
	return t.GenerateText(ctx, gemini.GenerationOptions{
		Prompt:    prompt,
		Documents: []gemini.Document{doc},
	})
}
