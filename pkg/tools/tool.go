// Package tools defines the Gemini tool catalog: each tool's input schema, how
// its arguments are validated and which backend serves it.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"k8s.io/utils/ptr"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/utils"
	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
)

// OutputKind describes the shape of a tool's successful result.
type OutputKind string

const (
	OutputText   OutputKind = "text"
	OutputBase64 OutputKind = "base64"
	OutputPaths  OutputKind = "paths"
	OutputJSON   OutputKind = "json"
	// OutputDual results carry paths when a destination is given and inline
	// base64 data otherwise.
	OutputDual OutputKind = "dual"
)

type Tool struct {
	Name        string
	Title       string
	Description string
	InputSchema *jsonschema.Schema
	Output      OutputKind
	Capability  backend.Capability
	ReadOnly    bool

	call func(ctx context.Context, b *backend.Selector, raw json.RawMessage) (any, error)
}

// newTool binds a typed input to a tool. The schema is resolved once here and
// every call is validated against it before the backend is consulted.
func newTool[In any](t Tool, invoke func(ctx context.Context, b *backend.Selector, in *In) (any, error)) *Tool {
	parser, err := invocation.NewRequestParser(t.InputSchema)
	if err != nil {
		panic(fmt.Sprintf("tool %s: %v", t.Name, err))
	}

	t.call = func(ctx context.Context, b *backend.Selector, raw json.RawMessage) (any, error) {
		in := new(In)
		if err := parser.Parse(raw, in); err != nil {
			return nil, err
		}
		return invoke(ctx, b, in)
	}
	return &t
}

// Call validates raw and runs the tool against b.
func (t *Tool) Call(ctx context.Context, b *backend.Selector, raw json.RawMessage) (any, error) {
	return t.call(ctx, b, raw)
}

// MCPTool returns the protocol description of t.
func (t *Tool) MCPTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Title:       t.Title,
		Description: t.Description,
		InputSchema: t.InputSchema,
		Annotations: &mcp.ToolAnnotations{
			Title:         t.Title, // some clients use the annotation instead of the title field from the tool
			ReadOnlyHint:  t.ReadOnly,
			OpenWorldHint: ptr.To(true),
		},
	}
}

// Handler adapts t to the MCP SDK. Failures are reported to the client as an
// error result carrying the full message.
func (t *Tool) Handler(b *backend.Selector) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clientLogger := logging.FromContext(ctx)
		clientLogger.Info("Tool invocation started", zap.String("tool_name", t.Name))

		out, err := t.Call(ctx, b, req.Params.Arguments)
		if err != nil {
			logging.BaseFromContext(ctx).Error("Tool invocation failed",
				zap.String("tool_name", t.Name),
				zap.String("error_kind", invocation.Kind(err)),
				zap.Error(err))
			clientLogger.Error("Tool invocation failed",
				zap.String("tool_name", t.Name),
				zap.String("error_kind", invocation.Kind(err)))
			return utils.McpTextError("%s", err.Error()), nil
		}

		res, err := utils.McpJsonResult(out)
		if err != nil {
			return utils.McpTextError("failed to encode result: %s", err.Error()), nil
		}

		clientLogger.Info("Tool invocation completed successfully", zap.String("tool_name", t.Name))
		return res, nil
	}
}

// Register adds every tool to s, bound to b.
func Register(s *mcp.Server, b *backend.Selector, tools []*Tool) {
	for _, t := range tools {
		s.AddTool(t.MCPTool(), t.Handler(b))
	}
}

// Find returns the tool named name, or nil.
func Find(tools []*Tool, name string) *Tool {
	for _, t := range tools {
		if t.Name == name {
			return t
		}
	}
	return nil
}
