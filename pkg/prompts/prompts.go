// Package prompts holds the static prompt templates offered to MCP clients.
package prompts

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/utils"
	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
)

// Prompt is a fixed conversation opener: an assistant framing followed by a
// user instruction.
type Prompt struct {
	Name        string
	Description string
	Version     string
	Framing     string
	Instruction string
}

var catalog = []Prompt{
	{
		Name:        "analyze_large_codebase",
		Description: "Analyze a large codebase (>200K tokens) using Gemini's 1M token context",
		Version:     "1.0",
		Framing:     "You are analyzing a large codebase. Use Gemini's 1M token context to understand the entire codebase structure and relationships.",
		Instruction: "Analyze this codebase and provide insights about its architecture, patterns, and potential improvements.",
	},
	{
		Name:        "multimodal_analysis",
		Description: "Analyze images, PDFs, and text together in a single prompt",
		Version:     "1.0",
		Framing:     "You are performing multimodal analysis. Combine insights from images, PDFs, and text to provide comprehensive understanding.",
		Instruction: "Analyze these documents and images together to extract key information and relationships.",
	},
	{
		Name:        "advanced_reasoning",
		Description: "Complex reasoning tasks that benefit from Gemini's thinking capabilities",
		Version:     "1.0",
		Framing:     "You are using Gemini's advanced reasoning capabilities. Think step-by-step through complex problems.",
		Instruction: "Solve this complex problem using careful reasoning and analysis.",
	},
	{
		Name:        "google_search_research",
		Description: "Research a topic using Google Search integration",
		Version:     "1.0",
		Framing:     "You are researching using Google Search. Gather comprehensive, up-to-date information from multiple sources.",
		Instruction: "Research this topic thoroughly using web search and synthesize the findings.",
	},
	{
		Name:        "create_multimedia_content",
		Description: "Generate complete multimedia content: images, videos, audio, and music",
		Version:     "2.0",
		Framing:     "You have access to Google's complete media generation suite: Imagen 3 for images, Veo 2 for videos, Chirp 3 HD for speech, and Lyria for music. Create rich multimedia content.",
		Instruction: "Create multimedia content using the available tools: generate images, videos, narration, and background music as needed.",
	},
	{
		Name:        "video_production_workflow",
		Description: "Complete video production: generate video, add music, overlay graphics",
		Version:     "2.0",
		Framing:     "You can create complete video productions: generate videos with Veo 2, add music with Lyria, overlay graphics, combine audio tracks, and produce professional results.",
		Instruction: "Create a complete video production: generate the base video, add background music, overlay graphics/logos, and produce the final output.",
	},
	{
		Name:        "audio_composition",
		Description: "Create layered audio compositions with music, narration, and effects",
		Version:     "2.0",
		Framing:     "You can create complex audio compositions: generate music with Lyria, synthesize speech with Chirp 3 HD, layer multiple tracks, adjust volumes, and produce professional audio.",
		Instruction: "Create a layered audio composition: generate background music, add narration, mix multiple tracks, and produce the final audio.",
	},
}

// Catalog returns every prompt in listing order.
func Catalog() []Prompt {
	return append([]Prompt(nil), catalog...)
}

// Lookup returns the prompt named name.
func Lookup(name string) (Prompt, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Prompt{}, false
}

// Messages returns the messages of the prompt named name, or nil when there is
// no such prompt.
func Messages(name string) []*mcp.PromptMessage {
	if p, ok := Lookup(name); ok {
		return p.Messages()
	}
	return nil
}

func (p Prompt) Messages() []*mcp.PromptMessage {
	return []*mcp.PromptMessage{
		{Role: "assistant", Content: &mcp.TextContent{Text: p.Framing}},
		{Role: "user", Content: &mcp.TextContent{Text: p.Instruction}},
	}
}

func (p Prompt) MCPPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        p.Name,
		Description: p.Description,
		Meta:        mcp.Meta{"version": p.Version},
	}
}

func handler(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	p, ok := Lookup(req.Params.Name)
	if !ok {
		logging.BaseFromContext(ctx).Warn("Unknown prompt requested", zap.String("prompt_name", req.Params.Name))
		return utils.McpPromptTextError("prompt %s not found", req.Params.Name), nil
	}

	logging.FromContext(ctx).Debug("Prompt rendered", zap.String("prompt_name", p.Name))
	return &mcp.GetPromptResult{Description: p.Description, Messages: p.Messages()}, nil
}

// Register adds every prompt in the catalog to s.
func Register(s *mcp.Server) {
	for _, p := range catalog {
		s.AddPrompt(p.MCPPrompt(), handler)
	}
}
