package tools

import (
	"context"

	"k8s.io/utils/ptr"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
)

type generateImageInput struct {
	Prompt string  `json:"prompt"`
	Size   *string `json:"size,omitempty"`
}

type ImageResult struct {
	Image string `json:"image"`
}

func generateImageTool() *Tool {
	return newTool(Tool{
		Name:  "gemini_generate_image",
		Title: "Generate an Image with Gemini",
		Description: `Generate an image from a text prompt with Google Gemini.
Returns the image as base64. Requires the Gemini CLI to be configured.`,
		InputSchema: object(
			required("prompt", nonEmpty("The prompt for image generation")),
			optional("size", enum("Size of the generated image", "512x512", "256x256", "512x512", "1024x1024")),
		),
		Output:     OutputBase64,
		Capability: backend.CapabilityImage,
	}, func(ctx context.Context, b *backend.Selector, in *generateImageInput) (any, error) {
		client, err := b.CLI(backend.CapabilityImage)
		if err != nil {
			return nil, err
		}

		data, err := client.Media.GenerateImage(ctx, gemini.ImageOptions{Prompt: in.Prompt, Size: in.Size})
		if err != nil {
			return nil, err
		}
		return ImageResult{Image: gemini.EncodeBase64(data)}, nil
	})
}

type generateVideoInput struct {
	Prompt   string `json:"prompt"`
	Duration *int   `json:"duration,omitempty"`
}

type VideoDataResult struct {
	Video string `json:"video"`
}

func generateVideoTool() *Tool {
	return newTool(Tool{
		Name:  "gemini_generate_video",
		Title: "Generate a Video with Gemini",
		Description: `Generate a short video clip from a text prompt with Google Gemini.
Useful for explainer videos and animated demonstrations. Returns the video as base64.
Requires the Gemini CLI to be configured.`,
		InputSchema: object(
			required("prompt", nonEmpty("The prompt for video generation")),
			optional("duration", integer("Duration of the video in seconds", ptr.To(1.0), ptr.To(60.0), ptr.To(5))),
		),
		Output:     OutputBase64,
		Capability: backend.CapabilityVideo,
	}, func(ctx context.Context, b *backend.Selector, in *generateVideoInput) (any, error) {
		client, err := b.CLI(backend.CapabilityVideo)
		if err != nil {
			return nil, err
		}

		data, err := client.Media.GenerateVideo(ctx, gemini.LegacyVideoOptions{Prompt: in.Prompt, Duration: in.Duration})
		if err != nil {
			return nil, err
		}
		return VideoDataResult{Video: gemini.EncodeBase64(data)}, nil
	})
}

type generatePDFInput struct {
	Content  string  `json:"content"`
	Template *string `json:"template,omitempty"`
}

type PDFResult struct {
	PDF string `json:"pdf"`
}

func generatePDFTool() *Tool {
	return newTool(Tool{
		Name:  "gemini_generate_pdf",
		Title: "Generate a PDF with Gemini",
		Description: `Turn text content into a formatted PDF document with Google Gemini.
Templates cover reports, articles and presentations. Returns the PDF as base64.
Requires the Gemini CLI to be configured.`,
		InputSchema: object(
			required("content", nonEmpty("The text content to convert to PDF")),
			optional("template", enum("PDF template style", "report", "report", "article", "presentation")),
		),
		Output:     OutputBase64,
		Capability: backend.CapabilityPDF,
	}, func(ctx context.Context, b *backend.Selector, in *generatePDFInput) (any, error) {
		client, err := b.CLI(backend.CapabilityPDF)
		if err != nil {
			return nil, err
		}

		data, err := client.Media.GeneratePDF(ctx, gemini.PDFOptions{Content: in.Content, Template: in.Template})
		if err != nil {
			return nil, err
		}
		return PDFResult{PDF: gemini.EncodeBase64(data)}, nil
	})
}
