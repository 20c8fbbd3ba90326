package tools

import (
	"context"
	"fmt"

	"k8s.io/utils/ptr"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
)

type imagenInput struct {
	Prompt          string  `json:"prompt"`
	Model           *string `json:"model,omitempty"`
	NumImages       *int    `json:"numImages,omitempty"`
	AspectRatio     *string `json:"aspectRatio,omitempty"`
	GCSBucketURI    *string `json:"gcsBucketUri,omitempty"`
	OutputDirectory *string `json:"outputDirectory,omitempty"`
}

func imagenTool() *Tool {
	return newTool(Tool{
		Name:  "imagen_t2i",
		Title: "Generate Images with Imagen",
		Description: `Generate images with Google's Imagen 3.
Photorealistic quality, aspect ratios 1:1, 16:9, 9:16, 4:3 and 3:4, and up to 4 images per
request. Images are returned inline as base64 unless a GCS bucket or local directory is
given, in which case only their paths are returned.`,
		InputSchema: object(
			required("prompt", nonEmpty("Text description for image generation")),
			optional("model", withDefault(str("Imagen model version"), gemini.ImagenDefaultModel)),
			optional("numImages", integer("Number of images to generate", ptr.To(1.0), ptr.To(4.0), ptr.To(1))),
			optional("aspectRatio", withDefault(str(`Aspect ratio (e.g., "1:1", "16:9", "9:16")`), "1:1")),
			optional("gcsBucketUri", str("GCS URI for saving images (gs://bucket-name)")),
			optional("outputDirectory", str("Local directory for saving images")),
		),
		Output:     OutputDual,
		Capability: backend.CapabilityImage,
	}, func(ctx context.Context, b *backend.Selector, in *imagenInput) (any, error) {
		client, err := b.CLI(backend.CapabilityImage)
		if err != nil {
			return nil, err
		}

		opts := gemini.ImagenOptions{
			Prompt:          in.Prompt,
			Model:           in.Model,
			NumImages:       in.NumImages,
			AspectRatio:     in.AspectRatio,
			GCSBucketURI:    in.GCSBucketURI,
			OutputDirectory: in.OutputDirectory,
		}
		res, err := client.Imagen.TextToImage(ctx, opts)
		if err != nil {
			return nil, err
		}

		if opts.HasDestination() {
			return persisted(res.Paths, fmt.Sprintf("Generated %d image(s)", valueOr(in.NumImages, 1))), nil
		}

		images := make([]string, 0, len(res.Images))
		for _, img := range res.Images {
			images = append(images, gemini.EncodeBase64(img))
		}
		return InlineImages{Images: images, Count: len(images)}, nil
	})
}

type textToVideoInput struct {
	Prompt          string  `json:"prompt"`
	Model           *string `json:"model,omitempty"`
	Bucket          string  `json:"bucket"`
	NumVideos       *int    `json:"numVideos,omitempty"`
	AspectRatio     *string `json:"aspectRatio,omitempty"`
	Duration        *int    `json:"duration,omitempty"`
	OutputDirectory *string `json:"outputDirectory,omitempty"`
}

func veoTextToVideoTool() *Tool {
	return newTool(Tool{
		Name:  "veo_t2v",
		Title: "Generate Video from Text with Veo",
		Description: `Generate videos from text with Google's Veo 2.
Cinematic quality with 5 to 8 second clips in 16:9 or 9:16. Videos are written to the
given GCS bucket and optionally downloaded to a local directory.`,
		InputSchema: object(
			required("prompt", nonEmpty("Text description for video generation")),
			optional("model", withDefault(str("Veo model version (veo-2.0 or veo-3.0-preview)"), gemini.VeoDefaultModel)),
			required("bucket", nonEmpty("GCS bucket for video storage (required by API)")),
			optional("numVideos", integer("Number of videos to generate", ptr.To(1.0), ptr.To(4.0), ptr.To(1))),
			optional("aspectRatio", withDefault(str(`Aspect ratio: "16:9", "9:16", "widescreen", "portrait"`), "16:9")),
			optional("duration", integer("Video duration in seconds", ptr.To(5.0), ptr.To(8.0), ptr.To(5))),
			optional("outputDirectory", str("Local directory to download generated videos")),
		),
		Output:     OutputPaths,
		Capability: backend.CapabilityVideo,
	}, func(ctx context.Context, b *backend.Selector, in *textToVideoInput) (any, error) {
		client, err := b.CLI(backend.CapabilityVideo)
		if err != nil {
			return nil, err
		}

		res, err := client.Veo.TextToVideo(ctx, gemini.VideoOptions{
			Prompt:          in.Prompt,
			Bucket:          in.Bucket,
			Model:           in.Model,
			NumVideos:       in.NumVideos,
			AspectRatio:     in.AspectRatio,
			Duration:        in.Duration,
			OutputDirectory: in.OutputDirectory,
		})
		if err != nil {
			return nil, err
		}
		return videoPaths(res, fmt.Sprintf("Generated %d video(s) in %s", valueOr(in.NumVideos, 1), in.Bucket)), nil
	})
}

type imageToVideoInput struct {
	ImageURI        string  `json:"imageUri"`
	MIMEType        *string `json:"mimeType,omitempty"`
	Prompt          *string `json:"prompt,omitempty"`
	Model           *string `json:"model,omitempty"`
	Bucket          string  `json:"bucket"`
	NumVideos       *int    `json:"numVideos,omitempty"`
	AspectRatio     *string `json:"aspectRatio,omitempty"`
	Duration        *int    `json:"duration,omitempty"`
	OutputDirectory *string `json:"outputDirectory,omitempty"`
}

func veoImageToVideoTool() *Tool {
	return newTool(Tool{
		Name:  "veo_i2v",
		Title: "Generate Video from an Image with Veo",
		Description: `Animate a still image with Google's Veo 2.
Adds motion while preserving the image content, with optional text guidance. Videos are
written to the given GCS bucket and optionally downloaded to a local directory.`,
		InputSchema: object(
			required("imageUri", nonEmpty("GCS URI of input image (gs://bucket/image.jpg)")),
			optional("mimeType", enum("Image MIME type", "", "image/jpeg", "image/png")),
			optional("prompt", str("Optional text guidance for video generation")),
			optional("model", withDefault(str("Veo model version"), gemini.VeoDefaultModel)),
			required("bucket", nonEmpty("GCS bucket for video storage")),
			optional("numVideos", integer("Number of videos to generate", ptr.To(1.0), ptr.To(4.0), ptr.To(1))),
			optional("aspectRatio", withDefault(str("Aspect ratio"), "16:9")),
			optional("duration", integer("Video duration in seconds", ptr.To(5.0), ptr.To(8.0), ptr.To(5))),
			optional("outputDirectory", str("Local directory to download videos")),
		),
		Output:     OutputPaths,
		Capability: backend.CapabilityVideo,
	}, func(ctx context.Context, b *backend.Selector, in *imageToVideoInput) (any, error) {
		client, err := b.CLI(backend.CapabilityVideo)
		if err != nil {
			return nil, err
		}

		res, err := client.Veo.ImageToVideo(ctx, gemini.ImageToVideoOptions{
			ImageURI:        in.ImageURI,
			Bucket:          in.Bucket,
			Prompt:          in.Prompt,
			MIMEType:        in.MIMEType,
			Model:           in.Model,
			NumVideos:       in.NumVideos,
			AspectRatio:     in.AspectRatio,
			Duration:        in.Duration,
			OutputDirectory: in.OutputDirectory,
		})
		if err != nil {
			return nil, err
		}
		return videoPaths(res, fmt.Sprintf("Generated %d video(s) from image", valueOr(in.NumVideos, 1))), nil
	})
}

func videoPaths(res *gemini.VideoResult, message string) VideoPaths {
	out := VideoPaths{
		Success: true,
		Videos:  res.Paths,
		GCSURIs: res.GCSURIs,
		Message: message,
	}
	if out.Videos == nil {
		out.Videos = []string{}
	}
	if out.GCSURIs == nil {
		out.GCSURIs = []string{}
	}
	out.Count = max(len(out.Videos), len(out.GCSURIs))
	return out
}

type speechInput struct {
	Text                  string   `json:"text"`
	VoiceName             *string  `json:"voiceName,omitempty"`
	OutputFilenamePrefix  *string  `json:"outputFilenamePrefix,omitempty"`
	OutputDirectory       *string  `json:"outputDirectory,omitempty"`
	Pronunciations        []string `json:"pronunciations,omitempty"`
	PronunciationEncoding *string  `json:"pronunciationEncoding,omitempty"`
}

const (
	defaultSpeechPrefix = "chirp_audio"
	speechSampleRate    = 24000
)

func chirpTool() *Tool {
	return newTool(Tool{
		Name:  "chirp_tts",
		Title: "Synthesize Speech with Chirp",
		Description: `Text-to-speech with Google's Chirp 3 HD voices in 27+ languages.
Natural prosody with custom pronunciations in IPA or X-SAMPA. Returns WAV audio inline as
base64, or the saved file path when an output directory is given.`,
		InputSchema: object(
			required("text", nonEmpty("Text to synthesize into speech")),
			optional("voiceName", withDefault(str("Specific Chirp3-HD voice name"), gemini.ChirpDefaultVoice)),
			optional("outputFilenamePrefix", withDefault(str("Prefix for output files"), defaultSpeechPrefix)),
			optional("outputDirectory", str("Local directory to save audio")),
			optional("pronunciations", stringArray(`Custom pronunciations as "phrase:phonetic_form"`, 0)),
			optional("pronunciationEncoding", enum("Phonetic encoding system", "ipa", "ipa", "xsampa")),
		),
		Output:     OutputDual,
		Capability: backend.CapabilitySpeech,
	}, func(ctx context.Context, b *backend.Selector, in *speechInput) (any, error) {
		client, err := b.CLI(backend.CapabilitySpeech)
		if err != nil {
			return nil, err
		}

		opts := gemini.SpeechOptions{
			Text:                  in.Text,
			VoiceName:             in.VoiceName,
			OutputFilenamePrefix:  in.OutputFilenamePrefix,
			OutputDirectory:       in.OutputDirectory,
			Pronunciations:        in.Pronunciations,
			PronunciationEncoding: in.PronunciationEncoding,
		}
		audio, err := client.Chirp.Synthesize(ctx, opts)
		if err != nil {
			return nil, err
		}

		if opts.HasDestination() {
			path := joinDestination(*in.OutputDirectory, nonEmptyOr(in.OutputFilenamePrefix, defaultSpeechPrefix)+".wav")
			return persistedFile(path, "Audio synthesized and saved to "+path), nil
		}
		return InlineAudio{
			Audio:      gemini.EncodeBase64(audio),
			Format:     "wav",
			SampleRate: speechSampleRate,
			Encoding:   "LINEAR16",
		}, nil
	})
}

type listVoicesInput struct {
	Language string `json:"language"`
}

type VoiceList struct {
	Voices   []gemini.ChirpVoice `json:"voices"`
	Count    int                 `json:"count"`
	Language string              `json:"language"`
}

func listVoicesTool() *Tool {
	return newTool(Tool{
		Name:  "list_chirp_voices",
		Title: "List Chirp Voices",
		Description: `List the Chirp 3 HD voices available for text-to-speech.
Filter by language to find voices for English, Spanish, French, German, Japanese and 20+ more.`,
		InputSchema: object(
			required("language", nonEmpty(`Language filter (e.g., "English", "Spanish", "en-US", "es-ES")`)),
		),
		Output:     OutputJSON,
		Capability: backend.CapabilitySpeech,
		ReadOnly:   true,
	}, func(ctx context.Context, b *backend.Selector, in *listVoicesInput) (any, error) {
		client, err := b.CLI(backend.CapabilitySpeech)
		if err != nil {
			return nil, err
		}

		voices, err := client.Chirp.ListVoices(ctx, in.Language)
		if err != nil {
			return nil, err
		}
		if voices == nil {
			voices = []gemini.ChirpVoice{}
		}
		return VoiceList{Voices: voices, Count: len(voices), Language: in.Language}, nil
	})
}

type musicInput struct {
	Prompt          string  `json:"prompt"`
	NegativePrompt  *string `json:"negativePrompt,omitempty"`
	Seed            *int    `json:"seed,omitempty"`
	SampleCount     *int    `json:"sampleCount,omitempty"`
	OutputGCSBucket *string `json:"outputGcsBucket,omitempty"`
	FileName        *string `json:"fileName,omitempty"`
	LocalPath       *string `json:"localPath,omitempty"`
	ModelID         *string `json:"modelId,omitempty"`
}

const defaultMusicFileName = "lyria_music.wav"

func lyriaTool() *Tool {
	return newTool(Tool{
		Name:  "lyria_generate_music",
		Title: "Generate Music with Lyria",
		Description: `Generate original music from a text description with Google's Lyria.
Good for background music, ambient soundscapes and genre or mood pieces. Returns WAV audio
inline as base64, or the saved path when a GCS bucket or local path is given.`,
		InputSchema: object(
			required("prompt", nonEmpty("Text description of the music to generate")),
			optional("negativePrompt", str("What to avoid in the music")),
			optional("seed", integer("Random seed for reproducibility", nil, nil, nil)),
			optional("sampleCount", integer("Number of samples to generate", ptr.To(1.0), ptr.To(10.0), ptr.To(1))),
			optional("outputGcsBucket", str("GCS bucket for saving (gs://bucket-name)")),
			optional("fileName", str("Custom filename for output")),
			optional("localPath", str("Local directory for saving")),
			optional("modelId", withDefault(str("Lyria model version"), gemini.LyriaDefaultModel)),
		),
		Output:     OutputDual,
		Capability: backend.CapabilityMusic,
	}, func(ctx context.Context, b *backend.Selector, in *musicInput) (any, error) {
		client, err := b.CLI(backend.CapabilityMusic)
		if err != nil {
			return nil, err
		}

		opts := gemini.MusicOptions{
			Prompt:          in.Prompt,
			NegativePrompt:  in.NegativePrompt,
			Seed:            in.Seed,
			SampleCount:     in.SampleCount,
			OutputGCSBucket: in.OutputGCSBucket,
			FileName:        in.FileName,
			LocalPath:       in.LocalPath,
			ModelID:         in.ModelID,
		}
		audio, err := client.Lyria.GenerateMusic(ctx, opts)
		if err != nil {
			return nil, err
		}

		if opts.HasDestination() {
			dest := nonEmptyOr(in.OutputGCSBucket, "")
			if dest == "" {
				dest = *in.LocalPath
			}
			path := joinDestination(dest, nonEmptyOr(in.FileName, defaultMusicFileName))
			return persistedFile(path, "Music generated and saved to "+path), nil
		}
		return InlineAudio{Audio: gemini.EncodeBase64(audio), Format: "wav"}, nil
	})
}
