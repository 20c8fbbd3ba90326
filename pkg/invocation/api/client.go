// Package api calls Gemini through its OpenAI compatible chat completions endpoint.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

const (
	searchTemperature   = 0.3
	searchMaxTokens     = 2048
	analysisTemperature = 0.3
	defaultNumResults   = 10
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	// HTTPClient is used for every request when set, e.g. to trust extra CAs.
	HTTPClient *http.Client
}

type Client struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = gemini.DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		// failures are reported to the caller, who owns any retry policy
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Client{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// GenerateText sends the prompt with any images and documents attached as
// content parts of a single user message.
func (c *Client) GenerateText(ctx context.Context, opts gemini.GenerationOptions) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(opts.Prompt),
	}
	for _, image := range opts.Images {
		parts = append(parts, inlinePart("image/png", image))
	}
	for _, doc := range opts.Documents {
		parts = append(parts, documentPart(doc))
	}

	temperature := c.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	maxTokens := c.maxTokens
	if opts.MaxTokens != nil {
		maxTokens = *opts.MaxTokens
	}

	return c.complete(ctx, opts.SystemPrompt, parts, temperature, maxTokens)
}

// SearchWeb asks the model for a JSON list of results. A reply that is not such
// a list is wrapped into a single result.
func (c *Client) SearchWeb(ctx context.Context, query string, numResults *int) ([]gemini.SearchResult, error) {
	n := defaultNumResults
	if numResults != nil {
		n = *numResults
	}

	prompt := fmt.Sprintf(`Search the web for: %q

Return the top %d most relevant results in JSON format:
[
  {
    "title": "Page title",
    "url": "https://example.com",
    "snippet": "Brief description of the content"
  }
]

Only return the JSON array, no other text.`, query, n)

	out, err := c.complete(ctx, "", []openai.ChatCompletionContentPartUnionParam{openai.TextContentPart(prompt)}, searchTemperature, searchMaxTokens)
	if err != nil {
		return nil, err
	}
	return gemini.ParseSearchResults(out), nil
}

func (c *Client) AnalyzeDocument(ctx context.Context, doc gemini.Document, prompt string) (string, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		documentPart(doc),
		openai.TextContentPart(prompt),
	}
	return c.complete(ctx, "", parts, analysisTemperature, c.maxTokens)
}

func (c *Client) complete(ctx context.Context, system string, parts []openai.ChatCompletionContentPartUnionParam, temperature float64, maxTokens int) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(parts))

	params := openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       c.model,
		Temperature: openai.Float(temperature),
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	logging.BaseFromContext(ctx).Debug("Calling gemini API", zap.String("model", c.model), zap.Int("parts", len(parts)))

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &invocation.InvocationError{API: true, ExitCode: -1, Err: err}
	}

	if len(completion.Choices) == 0 {
		return "", &invocation.MalformedOutputError{Reason: "completion has no choices"}
	}

	return completion.Choices[0].Message.Content, nil
}

func documentPart(doc gemini.Document) openai.ChatCompletionContentPartUnionParam {
	if doc.Type == gemini.DocumentTypeText {
		return openai.TextContentPart(string(doc.Content))
	}

	mimeType := doc.MIMEType
	if mimeType == "" {
		mimeType = defaultMIMEType(doc.Type)
	}
	return inlinePart(mimeType, doc.Content)
}

// inlinePart carries binary data as a data URI, which the Gemini endpoint
// accepts for images and PDFs alike.
func inlinePart(mimeType string, data []byte) openai.ChatCompletionContentPartUnionParam {
	return openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
		URL: gemini.DataURI(strings.ToLower(mimeType), data),
	})
}

func defaultMIMEType(t gemini.DocumentType) string {
	if t == gemini.DocumentTypePDF {
		return "application/pdf"
	}
	return "image/png"
}
