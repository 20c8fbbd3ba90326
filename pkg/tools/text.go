package tools

import (
	"context"
	"fmt"

	"k8s.io/utils/ptr"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
)

type generateTextInput struct {
	Prompt       string   `json:"prompt"`
	SystemPrompt string   `json:"systemPrompt,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MaxTokens    *int     `json:"maxTokens,omitempty"`
	Images       []string `json:"images,omitempty"`

	decoded [][]byte
}

func (in *generateTextInput) Validate() error {
	for i, img := range in.Images {
		data, err := gemini.DecodeBase64(img)
		if err != nil {
			return fmt.Errorf("images[%d] is not valid base64: %w", i, err)
		}
		in.decoded = append(in.decoded, data)
	}
	return nil
}

type TextResult struct {
	Text string `json:"text"`
}

func generateTextTool() *Tool {
	return newTool(Tool{
		Name:  "gemini_generate_text",
		Title: "Generate Text with Gemini",
		Description: fmt.Sprintf(`Generate text using Google Gemini (default model %s).
Supports a 1M token context window and images in the prompt. Use it for long documents,
complex reasoning, code generation and multimodal inputs.`, gemini.DefaultModel),
		InputSchema: object(
			required("prompt", nonEmpty("The prompt for text generation")),
			optional("systemPrompt", str("Optional system prompt to guide the generation")),
			optional("temperature", number("Temperature for generation (0.0-2.0)", ptr.To(0.0), ptr.To(2.0), nil)),
			optional("maxTokens", integer("Maximum number of tokens to generate", ptr.To(1.0), nil, nil)),
			optional("images", stringArray("Base64 encoded images for multimodal generation", 0)),
		),
		Output:     OutputJSON,
		Capability: backend.CapabilityText,
		ReadOnly:   true,
	}, func(ctx context.Context, b *backend.Selector, in *generateTextInput) (any, error) {
		text, err := b.Text(backend.CapabilityText)
		if err != nil {
			return nil, err
		}

		out, err := text.GenerateText(ctx, gemini.GenerationOptions{
			Prompt:       in.Prompt,
			SystemPrompt: in.SystemPrompt,
			Temperature:  in.Temperature,
			MaxTokens:    in.MaxTokens,
			Images:       in.decoded,
		})
		if err != nil {
			return nil, err
		}
		return TextResult{Text: out}, nil
	})
}

type searchWebInput struct {
	Query      string `json:"query"`
	NumResults *int   `json:"numResults,omitempty"`
}

type SearchResults struct {
	Results []gemini.SearchResult `json:"results"`
}

func searchWebTool() *Tool {
	return newTool(Tool{
		Name:  "gemini_search_web",
		Title: "Search the Web with Gemini",
		Description: `Search the web using Google Search through Gemini.
Results come from Google's index and knowledge graph, so they are current and match the
intent of the query well. Use this for any web search need.`,
		InputSchema: object(
			required("query", nonEmpty("The search query")),
			optional("numResults", integer("Number of results to return", ptr.To(1.0), ptr.To(50.0), ptr.To(10))),
		),
		Output:     OutputJSON,
		Capability: backend.CapabilitySearch,
		ReadOnly:   true,
	}, func(ctx context.Context, b *backend.Selector, in *searchWebInput) (any, error) {
		text, err := b.Text(backend.CapabilitySearch)
		if err != nil {
			return nil, err
		}

		results, err := text.SearchWeb(ctx, in.Query, in.NumResults)
		if err != nil {
			return nil, err
		}
		if results == nil {
			results = []gemini.SearchResult{}
		}
		return SearchResults{Results: results}, nil
	})
}

type analyzeDocumentInput struct {
	Document string `json:"document"`
	MIMEType string `json:"mimeType"`
	Prompt   string `json:"prompt"`

	decoded []byte
}

func (in *analyzeDocumentInput) Validate() error {
	data, err := gemini.DecodeBase64(in.Document)
	if err != nil {
		return fmt.Errorf("document is not valid base64: %w", err)
	}
	in.decoded = data
	return nil
}

type AnalysisResult struct {
	Analysis string `json:"analysis"`
}

func analyzeDocumentTool() *Tool {
	return newTool(Tool{
		Name:  "gemini_analyze_document",
		Title: "Analyze a Document with Gemini",
		Description: `Analyze documents with Gemini's document understanding.
Handles PDFs with layout, complex tables, multi-page documents, scanned pages and photos,
with a 1M token context for very large documents.`,
		InputSchema: object(
			required("document", nonEmpty("Base64 encoded document content")),
			required("mimeType", nonEmpty("MIME type of the document (e.g., application/pdf, image/png, text/plain)")),
			required("prompt", nonEmpty("Analysis prompt - what to extract or analyze from the document")),
		),
		Output:     OutputJSON,
		Capability: backend.CapabilityDocument,
		ReadOnly:   true,
	}, func(ctx context.Context, b *backend.Selector, in *analyzeDocumentInput) (any, error) {
		text, err := b.Text(backend.CapabilityDocument)
		if err != nil {
			return nil, err
		}

		doc := gemini.Document{
			Type:     gemini.DocumentTypeFor(in.MIMEType),
			Content:  in.decoded,
			MIMEType: in.MIMEType,
		}
		analysis, err := text.AnalyzeDocument(ctx, doc, in.Prompt)
		if err != nil {
			return nil, err
		}
		return AnalysisResult{Analysis: analysis}, nil
	})
}
