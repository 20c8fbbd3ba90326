// Package resources serves the read-only gemini:// documents.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"
	"go.uber.org/zap"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/utils"
	"github.com/gemini-mcp/gemini-mcp/pkg/observability/logging"
	"github.com/gemini-mcp/gemini-mcp/pkg/tools"
)

const (
	CapabilitiesURI      = "gemini://capabilities"
	ModelInfoURI         = "gemini://model-info"
	MediaCapabilitiesURI = "gemini://media-capabilities"
	UsageTipsURI         = "gemini://usage-tips"

	ToolSchemaTemplate = "gemini://tools/{name}"
	catchAllTemplate   = "gemini://{+path}"

	// NotFoundText is returned for any gemini:// URI that names no resource.
	NotFoundText = "Resource not found"
)

var toolSchemaTemplate = uritemplate.MustNew(ToolSchemaTemplate)

// Catalog answers reads for the static resources and the tool schema template.
type Catalog struct {
	model    string
	selector *backend.Selector
	tools    []*tools.Tool
}

// New builds a catalog. model is the configured text model; b reports which
// backend is in use.
func New(model string, b *backend.Selector, toolset []*tools.Tool) *Catalog {
	return &Catalog{model: model, selector: b, tools: toolset}
}

func (c *Catalog) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{
			URI:         CapabilitiesURI,
			Name:        "Gemini Capabilities",
			MIMEType:    "text/plain",
			Description: "Overview of what Gemini adds: context size, media generation, search and analysis",
		},
		{
			URI:         ModelInfoURI,
			Name:        "Current Gemini Model Information",
			MIMEType:    "application/json",
			Description: "Information about all configured Gemini models",
		},
		{
			URI:         MediaCapabilitiesURI,
			Name:        "Complete Media Generation Suite",
			MIMEType:    "text/markdown",
			Description: "Full catalog of media generation capabilities",
		},
		{
			URI:         UsageTipsURI,
			Name:        "When to Use Gemini",
			MIMEType:    "text/markdown",
			Description: "Guidelines for choosing Gemini for specific tasks",
		},
	}
}

func (c *Catalog) Templates() []*mcp.ResourceTemplate {
	return []*mcp.ResourceTemplate{
		{
			URITemplate: ToolSchemaTemplate,
			Name:        "Tool Input Schema",
			MIMEType:    "application/json",
			Description: "JSON Schema of a tool's arguments",
		},
		{
			URITemplate: catchAllTemplate,
			Name:        "Gemini Resource",
			Description: "Any other gemini:// resource",
		},
	}
}

// Read returns the contents of uri. URIs that name nothing yield the
// NotFoundText placeholder rather than an error.
func (c *Catalog) Read(uri string) (*mcp.ReadResourceResult, error) {
	switch uri {
	case CapabilitiesURI:
		return textResult(uri, "text/plain", capabilitiesText), nil
	case MediaCapabilitiesURI:
		return textResult(uri, "text/markdown", mediaCapabilitiesText), nil
	case UsageTipsURI:
		return textResult(uri, "text/markdown", usageTipsText), nil
	case ModelInfoURI:
		configuredVia := "Not configured"
		if c.selector != nil {
			configuredVia = c.selector.ConfiguredVia()
		}
		data, err := json.MarshalIndent(modelInfo(c.model, configuredVia), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode model info: %w", err)
		}
		return textResult(uri, "application/json", string(data)), nil
	}

	if values := toolSchemaTemplate.Match(uri); values != nil {
		if t := tools.Find(c.tools, values.Get("name").String()); t != nil {
			data, err := json.MarshalIndent(t.InputSchema, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to encode schema of tool %s: %w", t.Name, err)
			}
			return textResult(uri, "application/json", string(data)), nil
		}
	}

	return utils.McpResourceTextError(uri, NotFoundText), nil
}

func (c *Catalog) handler(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	res, err := c.Read(req.Params.URI)
	if err != nil {
		logging.BaseFromContext(ctx).Error("Resource read failed",
			zap.String("uri", req.Params.URI),
			zap.Error(err))
		return nil, err
	}

	logging.FromContext(ctx).Debug("Resource read", zap.String("uri", req.Params.URI))
	return res, nil
}

// Register adds the resources and templates to s.
func (c *Catalog) Register(s *mcp.Server) {
	for _, r := range c.Resources() {
		s.AddResource(r, c.handler)
	}
	for _, t := range c.Templates() {
		s.AddResourceTemplate(t, c.handler)
	}
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: mimeType, Text: text},
		},
	}
}
