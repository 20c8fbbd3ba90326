package geminicli

import (
	"context"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

type Chirp struct {
	runner cli.Runner
}

// Synthesize runs `chirp tts`. When an output directory is given the CLI
// persists the audio and nil is returned; otherwise the WAV bytes are returned.
func (c *Chirp) Synthesize(ctx context.Context, opts gemini.SpeechOptions) ([]byte, error) {
	args := cli.NewArgs("chirp", "tts").
		Flag("text", opts.Text).
		String("voice-name", opts.VoiceName).
		String("output-filename-prefix", opts.OutputFilenamePrefix).
		String("output-directory", opts.OutputDirectory).
		Repeated("pronunciations", opts.Pronunciations).
		String("pronunciation-encoding", opts.PronunciationEncoding)

	if opts.HasDestination() {
		_, err := c.runner.Run(ctx, args.Build())
		return nil, err
	}
	return runToFile(ctx, c.runner, args, "chirp", ".wav")
}

func (c *Chirp) ListVoices(ctx context.Context, language string) ([]gemini.ChirpVoice, error) {
	args := cli.NewArgs("chirp", "list-voices").
		Flag("language", language)

	out, err := c.runner.Run(ctx, args.Build())
	if err != nil {
		return nil, err
	}
	return gemini.ParseChirpVoices(out), nil
}
