package geminicli

import (
	"context"
	"os"
	"testing"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli/clitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestChirpSynthesizeInline(t *testing.T) {
	var outputPath string
	runner := writingRunner([]byte("RIFF....WAVE"), &outputPath)

	audio, err := (&Chirp{runner: runner}).Synthesize(context.Background(), gemini.SpeechOptions{
		Text:           "hello",
		Pronunciations: []string{"tomato:təˈmeɪtoʊ", "gif:dʒɪf"},
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF....WAVE"), audio)
	assert.Equal(t, []string{"tomato:təˈmeɪtoʊ", "gif:dʒɪf"}, clitest.FlagValues(runner.LastCall(), "pronunciations"))
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestChirpSynthesizeToDirectory(t *testing.T) {
	runner := &clitest.FakeRunner{Output: "Saved to: /tmp/audio/chirp_audio.wav"}

	audio, err := (&Chirp{runner: runner}).Synthesize(context.Background(), gemini.SpeechOptions{
		Text:            "hello",
		OutputDirectory: ptr.To("/tmp/audio"),
	})

	require.NoError(t, err)
	assert.Nil(t, audio)
	_, hasOutput := clitest.FlagValue(runner.LastCall(), "output")
	assert.False(t, hasOutput)
	assert.Equal(t, []string{"chirp", "tts", "--text", "hello", "--output-directory", "/tmp/audio"}, runner.LastCall())
}

func TestChirpListVoices(t *testing.T) {
	runner := &clitest.FakeRunner{Output: "Voice: en-US-Chirp3-HD-Zephyr (en-US)"}

	voices, err := (&Chirp{runner: runner}).ListVoices(context.Background(), "en-US")

	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "en-US", voices[0].LanguageCode)
	assert.Equal(t, []string{"chirp", "list-voices", "--language", "en-US"}, runner.LastCall())
}
