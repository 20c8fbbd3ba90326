// Package geminicli implements the Gemini features that are served by a local
// Gemini CLI. Every module depends only on cli.Runner, so the process primitive
// can be replaced in tests.
package geminicli

import (
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

// Client bundles the feature modules sharing a single runner.
type Client struct {
	Text   *TextGenerator
	Media  *LegacyMedia
	Imagen *Imagen
	Veo    *Veo
	Chirp  *Chirp
	Lyria  *Lyria
	AV     *AVTool
}

func NewClient(runner cli.Runner, defaults TextDefaults) *Client {
	return &Client{
		Text:   NewTextGenerator(runner, defaults),
		Media:  &LegacyMedia{runner: runner},
		Imagen: &Imagen{runner: runner},
		Veo:    &Veo{runner: runner},
		Chirp:  &Chirp{runner: runner},
		Lyria:  &Lyria{runner: runner},
		AV:     &AVTool{runner: runner},
	}
}
