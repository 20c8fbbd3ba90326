// Package backend decides, once at startup, which Gemini backend serves each
// capability.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	backendconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/backend"
	"github.com/gemini-mcp/gemini-mcp/pkg/gemini"
	"github.com/gemini-mcp/gemini-mcp/pkg/geminicli"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/api"
	"github.com/gemini-mcp/gemini-mcp/pkg/invocation/cli"
	"k8s.io/utils/ptr"
)

// TextBackend is implemented by both the API client and the CLI text module.
type TextBackend interface {
	GenerateText(ctx context.Context, opts gemini.GenerationOptions) (string, error)
	SearchWeb(ctx context.Context, query string, numResults *int) ([]gemini.SearchResult, error)
	AnalyzeDocument(ctx context.Context, doc gemini.Document, prompt string) (string, error)
}

var (
	_ TextBackend = &api.Client{}
	_ TextBackend = &geminicli.TextGenerator{}
)

type Options struct {
	Config *backendconfig.Config

	// HTTPClient is used by the API backend when set.
	HTTPClient *http.Client

	// APICapabilities overrides the capabilities the API backend declares.
	// Nil means APICapabilities.
	APICapabilities []Capability

	// Runner replaces the process runner built from Config.CLIPath.
	Runner cli.Runner
}

// Route records how a capability is served. Err is set when Kind is KindNone.
type Route struct {
	Capability Capability
	Kind       Kind
	Err        error
}

// Selector is the immutable backend handle shared by every tool.
type Selector struct {
	routes map[Capability]Route
	api    TextBackend
	cli    *geminicli.Client
}

func New(opts Options) (*Selector, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &backendconfig.Config{}
	}

	declared := opts.APICapabilities
	if declared == nil {
		declared = APICapabilities
	}
	for _, c := range declared {
		if !slices.Contains(APICapabilities, c) {
			return nil, fmt.Errorf("the API backend cannot serve %s", c)
		}
	}

	s := &Selector{routes: make(map[Capability]Route, len(AllCapabilities))}

	if cfg.HasAPI() {
		client, err := api.NewClient(api.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.APIBaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			HTTPClient:  opts.HTTPClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create API backend: %w", err)
		}
		s.api = client
	}

	runner := opts.Runner
	if runner == nil && cfg.HasCLI() {
		pr, err := cli.NewProcessRunner(cfg.CLIPath)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", backendconfig.EnvCLIPath, err)
		}
		runner = pr
	}
	if runner != nil {
		s.cli = geminicli.NewClient(runner, geminicli.TextDefaults{
			Model:       cfg.Model,
			Temperature: ptr.To(cfg.Temperature),
			MaxTokens:   ptr.To(cfg.MaxTokens),
		})
	}

	for _, c := range AllCapabilities {
		s.routes[c] = s.resolve(c, slices.Contains(declared, c))
	}

	return s, nil
}

// resolve prefers the API when it declares c, then the CLI.
func (s *Selector) resolve(c Capability, apiDeclares bool) Route {
	switch {
	case s.api != nil && apiDeclares:
		return Route{Capability: c, Kind: KindAPI}
	case s.cli != nil:
		return Route{Capability: c, Kind: KindProcess}
	case s.api != nil:
		return Route{Capability: c, Err: &invocation.UnsupportedError{
			Capability: string(c),
			Backend:    "Gemini API",
			Variable:   backendconfig.EnvCLIPath,
		}}
	case apiDeclares:
		return Route{Capability: c, Err: &invocation.ConfigError{
			Capability: string(c),
			Variables:  []string{backendconfig.EnvAPIKey, backendconfig.EnvCLIPath},
		}}
	default:
		return Route{Capability: c, Err: &invocation.ConfigError{
			Capability: string(c),
			Variables:  []string{backendconfig.EnvCLIPath},
		}}
	}
}

func (s *Selector) Route(c Capability) Route {
	if r, ok := s.routes[c]; ok {
		return r
	}
	return Route{Capability: c, Err: fmt.Errorf("unknown capability %q", c)}
}

// Routes returns the routing table in AllCapabilities order.
func (s *Selector) Routes() []Route {
	routes := make([]Route, 0, len(AllCapabilities))
	for _, c := range AllCapabilities {
		routes = append(routes, s.routes[c])
	}
	return routes
}

// Text returns the backend serving a text capability, or the route's error.
func (s *Selector) Text(c Capability) (TextBackend, error) {
	r := s.Route(c)
	switch r.Kind {
	case KindAPI:
		return s.api, nil
	case KindProcess:
		return s.cli.Text, nil
	default:
		return nil, r.Err
	}
}

// CLI returns the CLI client for a capability only the CLI implements.
func (s *Selector) CLI(c Capability) (*geminicli.Client, error) {
	r := s.Route(c)
	switch r.Kind {
	case KindProcess:
		return s.cli, nil
	case KindAPI:
		return nil, fmt.Errorf("%s is routed to the API backend, which has no media support", c)
	default:
		return nil, r.Err
	}
}

// ConfiguredVia names the backend serving text generation: API, CLI or Not configured.
func (s *Selector) ConfiguredVia() string {
	if k := s.Route(CapabilityText).Kind; k != KindNone {
		return k.String()
	}
	return "Not configured"
}
