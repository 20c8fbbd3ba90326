package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"k8s.io/utils/ptr"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/geminicli"
)

const (
	defaultGIFScale = 0.33
	defaultGIFFPS   = 15
)

type mediaInfoInput struct {
	InputFile string `json:"inputFile"`
}

type convertInput struct {
	InputFile  string `json:"inputFile"`
	OutputFile string `json:"outputFile"`
}

type gifInput struct {
	InputFile        string   `json:"inputFile"`
	OutputFile       string   `json:"outputFile"`
	ScaleWidthFactor *float64 `json:"scaleWidthFactor,omitempty"`
	FPS              *int     `json:"fps,omitempty"`
}

type combineInput struct {
	VideoFile  string `json:"videoFile"`
	AudioFile  string `json:"audioFile"`
	OutputFile string `json:"outputFile"`
}

type overlayInput struct {
	VideoFile   string  `json:"videoFile"`
	ImageFile   string  `json:"imageFile"`
	OutputFile  string  `json:"outputFile"`
	XCoordinate float64 `json:"xCoordinate"`
	YCoordinate float64 `json:"yCoordinate"`
}

type mergeInput struct {
	InputFiles []string `json:"inputFiles"`
	OutputFile string   `json:"outputFile"`
}

type volumeInput struct {
	InputFile  string  `json:"inputFile"`
	OutputFile string  `json:"outputFile"`
	VolumeDB   float64 `json:"volumeDb"`
}

// avTool builds a media processing tool. Every one of them is served by the
// CLI's avtool subcommands.
func avTool[In any](t Tool, run func(ctx context.Context, av *geminicli.AVTool, in *In) (any, error)) *Tool {
	t.Output = OutputJSON
	t.Capability = backend.CapabilityMedia
	return newTool(t, func(ctx context.Context, b *backend.Selector, in *In) (any, error) {
		client, err := b.CLI(backend.CapabilityMedia)
		if err != nil {
			return nil, err
		}
		return run(ctx, client.AV, in)
	})
}

func done(outputPath, message string) OperationResult {
	return OperationResult{Success: true, OutputPath: outputPath, Message: message}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func mediaInfoTool() *Tool {
	return avTool(Tool{
		Name:  "ffmpeg_get_media_info",
		Title: "Get Media Info",
		Description: `Extract detailed metadata from an audio or video file: streams, codecs and
formats, duration, bitrate, resolution and all other technical metadata.`,
		InputSchema: object(
			required("inputFile", nonEmpty("Path to media file (local or gs://)")),
		),
		ReadOnly: true,
	}, func(ctx context.Context, av *geminicli.AVTool, in *mediaInfoInput) (any, error) {
		return av.MediaInfo(ctx, in.InputFile)
	})
}

func convertAudioTool() *Tool {
	return avTool(Tool{
		Name:  "ffmpeg_convert_audio_wav_to_mp3",
		Title: "Convert WAV to MP3",
		Description: `Convert a WAV audio file to MP3 with the libmp3lame codec, keeping quality
while reducing size. Local and GCS paths are supported.`,
		InputSchema: object(
			required("inputFile", nonEmpty("Input WAV file path")),
			required("outputFile", nonEmpty("Output MP3 file path")),
		),
	}, func(ctx context.Context, av *geminicli.AVTool, in *convertInput) (any, error) {
		if err := av.ConvertWAVToMP3(ctx, gemini.ConvertOptions{InputPath: in.InputFile, OutputPath: in.OutputFile}); err != nil {
			return nil, err
		}
		return done(in.OutputFile, "Audio converted to MP3 successfully"), nil
	})
}

func videoToGIFTool() *Tool {
	return avTool(Tool{
		Name:  "ffmpeg_video_to_gif",
		Title: "Convert Video to GIF",
		Description: `Create an animated GIF from a video using a two-pass palette, with adjustable
scale and frame rate.`,
		InputSchema: object(
			required("inputFile", nonEmpty("Input video file path")),
			required("outputFile", nonEmpty("Output GIF file path")),
			optional("scaleWidthFactor", number("Scale factor (0.33 = 1/3 width)", ptr.To(0.1), ptr.To(1.0), ptr.To(defaultGIFScale))),
			optional("fps", integer("Frames per second", ptr.To(1.0), ptr.To(50.0), ptr.To(defaultGIFFPS))),
		),
	}, func(ctx context.Context, av *geminicli.AVTool, in *gifInput) (any, error) {
		err := av.VideoToGIF(ctx, gemini.VideoToGIFOptions{
			InputPath:        in.InputFile,
			OutputPath:       in.OutputFile,
			ScaleWidthFactor: in.ScaleWidthFactor,
			FPS:              in.FPS,
		})
		if err != nil {
			return nil, err
		}

		percent := math.Round(valueOr(in.ScaleWidthFactor, defaultGIFScale)*10000) / 100
		return done(in.OutputFile, fmt.Sprintf("GIF created at %d fps, %s%% scale",
			valueOr(in.FPS, defaultGIFFPS), formatNumber(percent))), nil
	})
}

func combineTool() *Tool {
	return avTool(Tool{
		Name:  "ffmpeg_combine_audio_and_video",
		Title: "Combine Audio and Video",
		Description: `Merge a separate audio file and video file into one, keeping video quality and
cutting to the shorter of the two.`,
		InputSchema: object(
			required("videoFile", nonEmpty("Input video file path")),
			required("audioFile", nonEmpty("Input audio file path")),
			required("outputFile", nonEmpty("Output combined file path")),
		),
	}, func(ctx context.Context, av *geminicli.AVTool, in *combineInput) (any, error) {
		err := av.CombineAudioAndVideo(ctx, gemini.CombineOptions{
			VideoPath:  in.VideoFile,
			AudioPath:  in.AudioFile,
			OutputPath: in.OutputFile,
		})
		if err != nil {
			return nil, err
		}
		return done(in.OutputFile, "Audio and video combined successfully"), nil
	})
}

func overlayTool() *Tool {
	return avTool(Tool{
		Name:  "ffmpeg_overlay_image_on_video",
		Title: "Overlay Image on Video",
		Description: `Overlay an image such as a watermark or logo on a video at the given x,y
position.`,
		InputSchema: object(
			required("videoFile", nonEmpty("Input video file path")),
			required("imageFile", nonEmpty("Image to overlay (PNG recommended)")),
			required("outputFile", nonEmpty("Output video file path")),
			required("xCoordinate", number("X position for overlay", nil, nil, nil)),
			required("yCoordinate", number("Y position for overlay", nil, nil, nil)),
		),
	}, func(ctx context.Context, av *geminicli.AVTool, in *overlayInput) (any, error) {
		err := av.OverlayImage(ctx, gemini.OverlayOptions{
			VideoPath:   in.VideoFile,
			ImagePath:   in.ImageFile,
			OutputPath:  in.OutputFile,
			XCoordinate: in.XCoordinate,
			YCoordinate: in.YCoordinate,
		})
		if err != nil {
			return nil, err
		}
		return done(in.OutputFile, fmt.Sprintf("Image overlaid at position (%s, %s)",
			formatNumber(in.XCoordinate), formatNumber(in.YCoordinate))), nil
	})
}

func concatenateTool() *Tool {
	return avTool(Tool{
		Name:  "ffmpeg_concatenate_media_files",
		Title: "Concatenate Media Files",
		Description: `Join two or more audio or video files into one, converting formats where
needed.`,
		InputSchema: object(
			required("inputFiles", stringArray("Array of input file paths to concatenate", 2)),
			required("outputFile", nonEmpty("Output concatenated file path")),
		),
	}, func(ctx context.Context, av *geminicli.AVTool, in *mergeInput) (any, error) {
		if err := av.Concatenate(ctx, gemini.MergeOptions{InputPaths: in.InputFiles, OutputPath: in.OutputFile}); err != nil {
			return nil, err
		}
		return done(in.OutputFile, fmt.Sprintf("Concatenated %d files successfully", len(in.InputFiles))), nil
	})
}

func adjustVolumeTool() *Tool {
	return avTool(Tool{
		Name:  "ffmpeg_adjust_volume",
		Title: "Adjust Volume",
		Description: `Adjust audio volume by a number of decibels. Positive values increase the
volume and negative values decrease it.`,
		InputSchema: object(
			required("inputFile", nonEmpty("Input audio file path")),
			required("outputFile", nonEmpty("Output audio file path")),
			required("volumeDb", number("Volume adjustment in dB (+/- values)", ptr.To(-50.0), ptr.To(50.0), nil)),
		),
	}, func(ctx context.Context, av *geminicli.AVTool, in *volumeInput) (any, error) {
		err := av.AdjustVolume(ctx, gemini.VolumeOptions{
			InputPath:  in.InputFile,
			OutputPath: in.OutputFile,
			VolumeDB:   in.VolumeDB,
		})
		if err != nil {
			return nil, err
		}
		return done(in.OutputFile, fmt.Sprintf("Volume adjusted by %sdB", formatNumber(in.VolumeDB))), nil
	})
}

func layerAudioTool() *Tool {
	return avTool(Tool{
		Name:  "ffmpeg_layer_audio_files",
		Title: "Layer Audio Files",
		Description: `Mix two or more audio files so they play simultaneously. The output lasts as
long as the longest input.`,
		InputSchema: object(
			required("inputFiles", stringArray("Array of audio files to layer", 2)),
			required("outputFile", nonEmpty("Output mixed audio file path")),
		),
	}, func(ctx context.Context, av *geminicli.AVTool, in *mergeInput) (any, error) {
		if err := av.LayerAudio(ctx, gemini.MergeOptions{InputPaths: in.InputFiles, OutputPath: in.OutputFile}); err != nil {
			return nil, err
		}
		return done(in.OutputFile, fmt.Sprintf("Layered %d audio files successfully", len(in.InputFiles))), nil
	})
}
