package geminicli

import (
	"context"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
)

// AVTool wraps the ffmpeg based `avtool` subcommands. Paths may be local or gs://.
type AVTool struct {
	runner cli.Runner
}

func (a *AVTool) MediaInfo(ctx context.Context, inputPath string) (*gemini.MediaInfo, error) {
	out, err := a.run(ctx, cli.NewArgs("avtool", "ffmpeg-get-media-info").
		Flag("input-file", inputPath))
	if err != nil {
		return nil, err
	}
	return gemini.ParseMediaInfo(out)
}

func (a *AVTool) ConvertWAVToMP3(ctx context.Context, opts gemini.ConvertOptions) error {
	_, err := a.run(ctx, cli.NewArgs("avtool", "ffmpeg-convert-audio-wav-to-mp3").
		Flag("input-file", opts.InputPath).
		Flag("output-file", opts.OutputPath))
	return err
}

func (a *AVTool) VideoToGIF(ctx context.Context, opts gemini.VideoToGIFOptions) error {
	_, err := a.run(ctx, cli.NewArgs("avtool", "ffmpeg-video-to-gif").
		Flag("input-file", opts.InputPath).
		Flag("output-file", opts.OutputPath).
		Float("scale-width-factor", opts.ScaleWidthFactor).
		Int("fps", opts.FPS))
	return err
}

func (a *AVTool) CombineAudioAndVideo(ctx context.Context, opts gemini.CombineOptions) error {
	_, err := a.run(ctx, cli.NewArgs("avtool", "ffmpeg-combine-audio-and-video").
		Flag("video-file", opts.VideoPath).
		Flag("audio-file", opts.AudioPath).
		Flag("output-file", opts.OutputPath))
	return err
}

func (a *AVTool) OverlayImage(ctx context.Context, opts gemini.OverlayOptions) error {
	_, err := a.run(ctx, cli.NewArgs("avtool", "ffmpeg-overlay-image-on-video").
		Flag("video-file", opts.VideoPath).
		Flag("image-file", opts.ImagePath).
		Flag("output-file", opts.OutputPath).
		Number("x-coordinate", opts.XCoordinate).
		Number("y-coordinate", opts.YCoordinate))
	return err
}

func (a *AVTool) Concatenate(ctx context.Context, opts gemini.MergeOptions) error {
	_, err := a.run(ctx, cli.NewArgs("avtool", "ffmpeg-concatenate-media-files").
		Flag("output-file", opts.OutputPath).
		Repeated("input-files", opts.InputPaths))
	return err
}

func (a *AVTool) AdjustVolume(ctx context.Context, opts gemini.VolumeOptions) error {
	_, err := a.run(ctx, cli.NewArgs("avtool", "ffmpeg-adjust-volume").
		Flag("input-file", opts.InputPath).
		Flag("output-file", opts.OutputPath).
		Number("volume-db", opts.VolumeDB))
	return err
}

func (a *AVTool) LayerAudio(ctx context.Context, opts gemini.MergeOptions) error {
	_, err := a.run(ctx, cli.NewArgs("avtool", "ffmpeg-layer-audio-files").
		Flag("output-file", opts.OutputPath).
		Repeated("input-files", opts.InputPaths))
	return err
}

func (a *AVTool) run(ctx context.Context, args *cli.Args) (string, error) {
	return a.runner.Run(ctx, args.Build())
}
