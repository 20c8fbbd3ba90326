package geminicli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli/clitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

// writingRunner simulates a CLI that writes payload to the --output path.
func writingRunner(payload []byte, outputPath *string) *clitest.FakeRunner {
	return &clitest.FakeRunner{
		OnRun: func(args []string) (string, error) {
			path, ok := clitest.FlagValue(args, "output")
			if !ok {
				return "", errors.New("no --output flag")
			}
			*outputPath = path
			return "done", os.WriteFile(path, payload, 0o600)
		},
	}
}

func TestLegacyMediaRoundTrip(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	tcs := []struct {
		name      string
		call      func(m *LegacyMedia) ([]byte, error)
		expectCmd string
		expectExt string
	}{
		{
			name: "image",
			call: func(m *LegacyMedia) ([]byte, error) {
				return m.GenerateImage(context.Background(), gemini.ImageOptions{Prompt: "cat", Size: ptr.To("256x256")})
			},
			expectCmd: "generate-image",
			expectExt: ".png",
		},
		{
			name: "video",
			call: func(m *LegacyMedia) ([]byte, error) {
				return m.GenerateVideo(context.Background(), gemini.LegacyVideoOptions{Prompt: "cat"})
			},
			expectCmd: "generate-video",
			expectExt: ".mp4",
		},
		{
			name: "pdf",
			call: func(m *LegacyMedia) ([]byte, error) {
				return m.GeneratePDF(context.Background(), gemini.PDFOptions{Content: "body", Template: ptr.To("article")})
			},
			expectCmd: "generate-pdf",
			expectExt: ".pdf",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var outputPath string
			runner := writingRunner(payload, &outputPath)

			got, err := tc.call(&LegacyMedia{runner: runner})
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.Equal(t, tc.expectCmd, runner.LastCall()[0])
			assert.Contains(t, outputPath, tc.expectExt)

			_, statErr := os.Stat(outputPath)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestLegacyMediaArguments(t *testing.T) {
	runner := &clitest.FakeRunner{}
	m := &LegacyMedia{runner: runner}

	_, _ = m.GenerateImage(context.Background(), gemini.ImageOptions{Prompt: "cat"})
	args := runner.LastCall()
	_, hasSize := clitest.FlagValue(args, "size")
	assert.False(t, hasSize)
	assert.Equal(t, []string{"generate-image", "--prompt", "cat", "--output"}, args[:4])
}

func TestLegacyMediaMissingOutput(t *testing.T) {
	runner := &clitest.FakeRunner{Output: "ok"}

	_, err := (&LegacyMedia{runner: runner}).GeneratePDF(context.Background(), gemini.PDFOptions{Content: "body"})

	var malformed *invocation.MalformedOutputError
	assert.True(t, errors.As(err, &malformed))
}

func TestLegacyMediaFailureCleansUp(t *testing.T) {
	var outputPath string
	runner := &clitest.FakeRunner{
		OnRun: func(args []string) (string, error) {
			outputPath, _ = clitest.FlagValue(args, "output")
			_ = os.WriteFile(outputPath, []byte("partial"), 0o600)
			return "", &invocation.InvocationError{ExitCode: 1, Stderr: "boom"}
		},
	}

	_, err := (&LegacyMedia{runner: runner}).GenerateVideo(context.Background(), gemini.LegacyVideoOptions{Prompt: "x"})

	var invErr *invocation.InvocationError
	require.True(t, errors.As(err, &invErr))
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}
