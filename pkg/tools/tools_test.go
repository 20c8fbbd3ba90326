package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	backendconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli/clitest"
)

func newSelector(t *testing.T, env map[string]string, runner *clitest.FakeRunner) *backend.Selector {
	t.Helper()
	cfg, err := backendconfig.Load(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	require.NoError(t, err)

	opts := backend.Options{Config: cfg}
	if runner != nil {
		opts.Runner = runner
	}
	s, err := backend.New(opts)
	require.NoError(t, err)
	return s
}

func cliSelector(t *testing.T, runner *clitest.FakeRunner) *backend.Selector {
	return newSelector(t, map[string]string{backendconfig.EnvCLIPath: "gemini"}, runner)
}

func call(t *testing.T, b *backend.Selector, name, args string) (any, error) {
	t.Helper()
	tool := Find(Catalog(), name)
	require.NotNil(t, tool, "tool %s", name)
	return tool.Call(context.Background(), b, json.RawMessage(args))
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 20)

	seen := map[string]bool{}
	for _, tool := range catalog {
		t.Run(tool.Name, func(t *testing.T) {
			assert.False(t, seen[tool.Name], "duplicate tool name")
			seen[tool.Name] = true

			assert.NotEmpty(t, tool.Title)
			assert.NotEmpty(t, tool.Description)
			assert.NotEmpty(t, tool.Output)
			assert.Contains(t, backend.AllCapabilities, tool.Capability)
			assert.Equal(t, invocation.JsonSchemaTypeObject, tool.InputSchema.Type)

			_, err := json.Marshal(tool.InputSchema)
			assert.NoError(t, err)
		})
	}
}

func TestValidationHappensBeforeBackendResolution(t *testing.T) {
	tt := []struct {
		name string
		tool string
		args string
	}{
		{name: "missing prompt", tool: "gemini_generate_text", args: `{}`},
		{name: "empty prompt", tool: "gemini_generate_text", args: `{"prompt":""}`},
		{name: "temperature above range", tool: "gemini_generate_text", args: `{"prompt":"p","temperature":3}`},
		{name: "zero max tokens", tool: "gemini_generate_text", args: `{"prompt":"p","maxTokens":0}`},
		{name: "image not base64", tool: "gemini_generate_text", args: `{"prompt":"p","images":["%%%"]}`},
		{name: "unknown field", tool: "gemini_generate_text", args: `{"prompt":"p","topK":3}`},
		{name: "too many results", tool: "gemini_search_web", args: `{"query":"q","numResults":51}`},
		{name: "fractional results", tool: "gemini_search_web", args: `{"query":"q","numResults":2.5}`},
		{name: "unknown size", tool: "gemini_generate_image", args: `{"prompt":"p","size":"2048x2048"}`},
		{name: "legacy video too long", tool: "gemini_generate_video", args: `{"prompt":"p","duration":61}`},
		{name: "unknown template", tool: "gemini_generate_pdf", args: `{"content":"c","template":"memo"}`},
		{name: "too many images", tool: "imagen_t2i", args: `{"prompt":"p","numImages":5}`},
		{name: "veo missing bucket", tool: "veo_t2v", args: `{"prompt":"p"}`},
		{name: "veo duration too long", tool: "veo_t2v", args: `{"prompt":"p","bucket":"b","duration":9}`},
		{name: "i2v unknown mime type", tool: "veo_i2v", args: `{"imageUri":"gs://b/i.gif","bucket":"b","mimeType":"image/gif"}`},
		{name: "unknown pronunciation encoding", tool: "chirp_tts", args: `{"text":"t","pronunciationEncoding":"arpabet"}`},
		{name: "too many samples", tool: "lyria_generate_music", args: `{"prompt":"p","sampleCount":11}`},
		{name: "gif scale too small", tool: "ffmpeg_video_to_gif", args: `{"inputFile":"a","outputFile":"b","scaleWidthFactor":0.05}`},
		{name: "gif fps too high", tool: "ffmpeg_video_to_gif", args: `{"inputFile":"a","outputFile":"b","fps":51}`},
		{name: "overlay missing coordinate", tool: "ffmpeg_overlay_image_on_video", args: `{"videoFile":"v","imageFile":"i","outputFile":"o","xCoordinate":1}`},
		{name: "single file to concatenate", tool: "ffmpeg_concatenate_media_files", args: `{"inputFiles":["a"],"outputFile":"o"}`},
		{name: "volume out of range", tool: "ffmpeg_adjust_volume", args: `{"inputFile":"a","outputFile":"b","volumeDb":-51}`},
		{name: "single file to layer", tool: "ffmpeg_layer_audio_files", args: `{"inputFiles":["a"],"outputFile":"o"}`},
		{name: "not an object", tool: "list_chirp_voices", args: `["en-US"]`},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			runner := &clitest.FakeRunner{}

			// with no backend at all, a validation error must still win over a configuration error
			_, err := call(t, newSelector(t, nil, nil), tc.tool, tc.args)
			require.Error(t, err)
			assert.True(t, invocation.IsValidationError(err), "got %v", err)

			_, err = call(t, cliSelector(t, runner), tc.tool, tc.args)
			require.Error(t, err)
			assert.True(t, invocation.IsValidationError(err), "got %v", err)
			assert.Empty(t, runner.Calls())
		})
	}
}

func TestNoBackendConfigured(t *testing.T) {
	b := newSelector(t, nil, nil)

	_, err := call(t, b, "gemini_generate_text", `{"prompt":"hello"}`)
	var configErr *invocation.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), backendconfig.EnvAPIKey)
	assert.Contains(t, err.Error(), backendconfig.EnvCLIPath)

	_, err = call(t, b, "imagen_t2i", `{"prompt":"a cat"}`)
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), backendconfig.EnvCLIPath)
	assert.NotContains(t, err.Error(), backendconfig.EnvAPIKey)
}

func TestMediaToolsWithOnlyTheAPI(t *testing.T) {
	b := newSelector(t, map[string]string{backendconfig.EnvAPIKey: "key"}, nil)

	for _, name := range []string{"imagen_t2i", "gemini_generate_image", "chirp_tts", "lyria_generate_music"} {
		t.Run(name, func(t *testing.T) {
			args := `{"prompt":"p"}`
			if name == "chirp_tts" {
				args = `{"text":"t"}`
			}
			_, err := call(t, b, name, args)

			var unsupported *invocation.UnsupportedError
			require.ErrorAs(t, err, &unsupported)
			assert.Contains(t, err.Error(), backendconfig.EnvCLIPath)
		})
	}
}

func TestGenerateText(t *testing.T) {
	runner := &clitest.FakeRunner{Output: "Hello there"}
	b := cliSelector(t, runner)

	out, err := call(t, b, "gemini_generate_text", `{"prompt":"Say hello","systemPrompt":"be brief","temperature":0.2}`)
	require.NoError(t, err)
	assert.Equal(t, TextResult{Text: "Hello there"}, out)

	args := runner.LastCall()
	assert.Equal(t, "generate", args[0])
	v, _ := clitest.FlagValue(args, "temperature")
	assert.Equal(t, "0.2", v)
	v, _ = clitest.FlagValue(args, "system")
	assert.Equal(t, "be brief", v)
	assert.Equal(t, []string{"--prompt", "Say hello"}, args[len(args)-2:])
}

func TestSearchWeb(t *testing.T) {
	t.Run("structured results", func(t *testing.T) {
		runner := &clitest.FakeRunner{Output: `[{"title":"Go","url":"https://go.dev","snippet":"The Go language"}]`}

		out, err := call(t, cliSelector(t, runner), "gemini_search_web", `{"query":"golang"}`)
		require.NoError(t, err)

		results := out.(SearchResults).Results
		require.Len(t, results, 1)
		assert.Equal(t, "https://go.dev", results[0].URL)
		assert.Equal(t, []string{"search", "--query", "golang"}, runner.LastCall())
	})

	t.Run("plain text is wrapped", func(t *testing.T) {
		runner := &clitest.FakeRunner{Output: "Go is a language"}

		out, err := call(t, cliSelector(t, runner), "gemini_search_web", `{"query":"golang","numResults":3}`)
		require.NoError(t, err)

		results := out.(SearchResults).Results
		require.Len(t, results, 1)
		assert.Equal(t, "Search Results", results[0].Title)
		assert.Equal(t, "Go is a language", results[0].Snippet)
		assert.Equal(t, []string{"search", "--query", "golang", "--num-results", "3"}, runner.LastCall())
	})
}

func TestAnalyzeDocumentStagesFile(t *testing.T) {
	var staged string
	runner := &clitest.FakeRunner{OnRun: func(args []string) (string, error) {
		staged, _ = clitest.FlagValue(args, "file")
		data, err := os.ReadFile(staged)
		if err != nil {
			return "", err
		}
		return "document says: " + string(data), nil
	}}

	out, err := call(t, cliSelector(t, runner), "gemini_analyze_document",
		`{"document":"aGVsbG8=","mimeType":"text/plain","prompt":"summarize"}`)
	require.NoError(t, err)
	assert.Equal(t, AnalysisResult{Analysis: "document says: hello"}, out)

	assert.Equal(t, ".txt", filepath.Ext(staged))
	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err), "staged document should be removed")
}

func TestOptionalFieldsAreOmitted(t *testing.T) {
	tt := []struct {
		tool   string
		args   string
		output string
		want   []string
	}{
		{
			tool:   "imagen_t2i",
			args:   `{"prompt":"a cat","outputDirectory":"/out"}`,
			output: "Saved image to: /out/cat.png",
			want:   []string{"imagen", "t2i", "--prompt", "a cat", "--output-directory", "/out"},
		},
		{
			tool: "veo_t2v",
			args: `{"prompt":"waves","bucket":"gs://b"}`,
			want: []string{"veo", "t2v", "--prompt", "waves", "--bucket", "gs://b"},
		},
		{
			tool: "veo_i2v",
			args: `{"imageUri":"gs://b/i.png","bucket":"gs://b","mimeType":"image/png"}`,
			want: []string{"veo", "i2v", "--image-uri", "gs://b/i.png", "--bucket", "gs://b", "--mime-type", "image/png"},
		},
		{
			tool: "list_chirp_voices",
			args: `{"language":"en-US"}`,
			want: []string{"chirp", "list-voices", "--language", "en-US"},
		},
		{
			tool:   "ffmpeg_get_media_info",
			args:   `{"inputFile":"gs://b/v.mp4"}`,
			output: `{"streams":[],"format":{"duration":"1.0"}}`,
			want:   []string{"avtool", "ffmpeg-get-media-info", "--input-file", "gs://b/v.mp4"},
		},
		{
			tool: "ffmpeg_video_to_gif",
			args: `{"inputFile":"in.mp4","outputFile":"out.gif"}`,
			want: []string{"avtool", "ffmpeg-video-to-gif", "--input-file", "in.mp4", "--output-file", "out.gif"},
		},
		{
			tool: "ffmpeg_concatenate_media_files",
			args: `{"inputFiles":["a.wav","b.wav","c.wav"],"outputFile":"o.wav"}`,
			want: []string{"avtool", "ffmpeg-concatenate-media-files", "--output-file", "o.wav",
				"--input-files", "a.wav", "--input-files", "b.wav", "--input-files", "c.wav"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.tool, func(t *testing.T) {
			runner := &clitest.FakeRunner{Output: tc.output}
			_, err := call(t, cliSelector(t, runner), tc.tool, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, runner.LastCall())
		})
	}
}

func TestImagenDualOutput(t *testing.T) {
	t.Run("destination returns only paths", func(t *testing.T) {
		runner := &clitest.FakeRunner{Output: "Generating...\nSaved image to: gs://bucket/img-1.png\nSaved image to: gs://bucket/img-2.png"}

		out, err := call(t, cliSelector(t, runner), "imagen_t2i", `{"prompt":"a cat","numImages":2,"gcsBucketUri":"gs://bucket"}`)
		require.NoError(t, err)

		raw, err := json.Marshal(out)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"success": true,
			"paths": ["gs://bucket/img-1.png", "gs://bucket/img-2.png"],
			"count": 2,
			"message": "Generated 2 image(s)"
		}`, string(raw))
	})

	t.Run("no destination returns only inline images", func(t *testing.T) {
		runner := &clitest.FakeRunner{Output: "data:image/png;base64,aGVsbG8=\ndata:image/png;base64,d29ybGQ="}

		out, err := call(t, cliSelector(t, runner), "imagen_t2i", `{"prompt":"a cat"}`)
		require.NoError(t, err)

		raw, err := json.Marshal(out)
		require.NoError(t, err)
		assert.JSONEq(t, `{"images":["aGVsbG8=","d29ybGQ="],"count":2}`, string(raw))
	})
}

func TestVeoPaths(t *testing.T) {
	runner := &clitest.FakeRunner{Output: "Video written to gs://b/v1.mp4\nSaved to: /out/v1.mp4"}

	out, err := call(t, cliSelector(t, runner), "veo_t2v", `{"prompt":"waves","bucket":"gs://b","outputDirectory":"/out"}`)
	require.NoError(t, err)

	res := out.(VideoPaths)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"/out/v1.mp4"}, res.Videos)
	assert.Equal(t, []string{"gs://b/v1.mp4"}, res.GCSURIs)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "Generated 1 video(s) in gs://b", res.Message)
}

func writeOutput(payload string) *clitest.FakeRunner {
	return &clitest.FakeRunner{OnRun: func(args []string) (string, error) {
		path, ok := clitest.FlagValue(args, "output")
		if !ok {
			return "done", nil
		}
		return "done", os.WriteFile(path, []byte(payload), 0o600)
	}}
}

func TestChirpDualOutput(t *testing.T) {
	t.Run("destination", func(t *testing.T) {
		runner := writeOutput("RIFF")

		out, err := call(t, cliSelector(t, runner), "chirp_tts", `{"text":"hello","outputDirectory":"/audio"}`)
		require.NoError(t, err)

		res := out.(PersistedMedia)
		assert.Equal(t, filepath.Join("/audio", "chirp_audio.wav"), res.Path)
		assert.Equal(t, []string{res.Path}, res.Paths)
		assert.Equal(t, 1, res.Count)

		_, hasOutput := clitest.FlagValue(runner.LastCall(), "output")
		assert.False(t, hasOutput)
	})

	t.Run("custom prefix", func(t *testing.T) {
		out, err := call(t, cliSelector(t, writeOutput("RIFF")), "chirp_tts",
			`{"text":"hello","outputDirectory":"/audio","outputFilenamePrefix":"intro"}`)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/audio", "intro.wav"), out.(PersistedMedia).Path)
	})

	t.Run("inline", func(t *testing.T) {
		runner := writeOutput("RIFF")

		out, err := call(t, cliSelector(t, runner), "chirp_tts",
			`{"text":"hello","pronunciations":["tomato:təˈmeɪtoʊ","data:ˈdeɪtə"]}`)
		require.NoError(t, err)
		assert.Equal(t, InlineAudio{Audio: "UklGRg==", Format: "wav", SampleRate: 24000, Encoding: "LINEAR16"}, out)
		assert.Equal(t, []string{"tomato:təˈmeɪtoʊ", "data:ˈdeɪtə"}, clitest.FlagValues(runner.LastCall(), "pronunciations"))
	})
}

func TestLyriaDerivedPath(t *testing.T) {
	tt := []struct {
		name string
		args string
		want string
	}{
		{name: "bucket default name", args: `{"prompt":"jazz","outputGcsBucket":"gs://music"}`, want: "gs://music/lyria_music.wav"},
		{name: "bucket takes precedence", args: `{"prompt":"jazz","outputGcsBucket":"gs://music/","localPath":"/tmp","fileName":"a.wav"}`, want: "gs://music/a.wav"},
		{name: "local path", args: `{"prompt":"jazz","localPath":"/tmp/music","fileName":"b.wav"}`, want: filepath.Join("/tmp/music", "b.wav")},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			out, err := call(t, cliSelector(t, writeOutput("RIFF")), "lyria_generate_music", tc.args)
			require.NoError(t, err)

			res := out.(PersistedMedia)
			assert.Equal(t, tc.want, res.Path)
			assert.Equal(t, "Music generated and saved to "+tc.want, res.Message)
		})
	}

	t.Run("inline", func(t *testing.T) {
		out, err := call(t, cliSelector(t, writeOutput("RIFF")), "lyria_generate_music", `{"prompt":"jazz","seed":42}`)
		require.NoError(t, err)
		assert.Equal(t, InlineAudio{Audio: "UklGRg==", Format: "wav"}, out)
	})
}

func TestListVoices(t *testing.T) {
	runner := &clitest.FakeRunner{Output: "Voice: en-US-Chirp3-HD-Zephyr (en-US)\nVoice: en-US-Chirp3-HD-Puck (en-US)"}

	out, err := call(t, cliSelector(t, runner), "list_chirp_voices", `{"language":"en-US"}`)
	require.NoError(t, err)

	res := out.(VoiceList)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "en-US", res.Language)
	assert.Equal(t, "en-US-Chirp3-HD-Puck", res.Voices[1].Name)
}

func TestMediaProcessingMessages(t *testing.T) {
	tt := []struct {
		tool string
		args string
		want OperationResult
	}{
		{
			tool: "ffmpeg_convert_audio_wav_to_mp3",
			args: `{"inputFile":"a.wav","outputFile":"a.mp3"}`,
			want: OperationResult{Success: true, OutputPath: "a.mp3", Message: "Audio converted to MP3 successfully"},
		},
		{
			tool: "ffmpeg_video_to_gif",
			args: `{"inputFile":"a.mp4","outputFile":"a.gif"}`,
			want: OperationResult{Success: true, OutputPath: "a.gif", Message: "GIF created at 15 fps, 33% scale"},
		},
		{
			tool: "ffmpeg_video_to_gif",
			args: `{"inputFile":"a.mp4","outputFile":"a.gif","scaleWidthFactor":0.5,"fps":24}`,
			want: OperationResult{Success: true, OutputPath: "a.gif", Message: "GIF created at 24 fps, 50% scale"},
		},
		{
			tool: "ffmpeg_combine_audio_and_video",
			args: `{"videoFile":"v.mp4","audioFile":"a.wav","outputFile":"o.mp4"}`,
			want: OperationResult{Success: true, OutputPath: "o.mp4", Message: "Audio and video combined successfully"},
		},
		{
			tool: "ffmpeg_overlay_image_on_video",
			args: `{"videoFile":"v.mp4","imageFile":"logo.png","outputFile":"o.mp4","xCoordinate":10,"yCoordinate":20.5}`,
			want: OperationResult{Success: true, OutputPath: "o.mp4", Message: "Image overlaid at position (10, 20.5)"},
		},
		{
			tool: "ffmpeg_concatenate_media_files",
			args: `{"inputFiles":["a.wav","b.wav"],"outputFile":"o.wav"}`,
			want: OperationResult{Success: true, OutputPath: "o.wav", Message: "Concatenated 2 files successfully"},
		},
		{
			tool: "ffmpeg_adjust_volume",
			args: `{"inputFile":"a.wav","outputFile":"b.wav","volumeDb":-3.5}`,
			want: OperationResult{Success: true, OutputPath: "b.wav", Message: "Volume adjusted by -3.5dB"},
		},
		{
			tool: "ffmpeg_layer_audio_files",
			args: `{"inputFiles":["a.wav","b.wav","c.wav"],"outputFile":"mix.wav"}`,
			want: OperationResult{Success: true, OutputPath: "mix.wav", Message: "Layered 3 audio files successfully"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.tool, func(t *testing.T) {
			out, err := call(t, cliSelector(t, &clitest.FakeRunner{}), tc.tool, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestHandlerReportsErrorsAsToolResults(t *testing.T) {
	runner := &clitest.FakeRunner{Err: &invocation.InvocationError{ExitCode: 2, Stderr: "quota exceeded"}}
	tool := Find(Catalog(), "gemini_generate_image")

	res, err := tool.Handler(cliSelector(t, runner))(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: tool.Name, Arguments: json.RawMessage(`{"prompt":"a cat"}`)},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "gemini CLI failed with code 2: quota exceeded", res.Content[0].(*mcp.TextContent).Text)
}

func TestHandlerReturnsStructuredContent(t *testing.T) {
	tool := Find(Catalog(), "gemini_generate_text")

	res, err := tool.Handler(cliSelector(t, &clitest.FakeRunner{Output: "hi"}))(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: tool.Name, Arguments: json.RawMessage(`{"prompt":"hello"}`)},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"text":"hi"}`, res.Content[0].(*mcp.TextContent).Text)
}

func TestBackendFailurePassesThrough(t *testing.T) {
	boom := errors.New("boom")
	runner := &clitest.FakeRunner{Err: boom}

	_, err := call(t, cliSelector(t, runner), "ffmpeg_adjust_volume", `{"inputFile":"a","outputFile":"b","volumeDb":3}`)
	assert.ErrorIs(t, err, boom)
}
