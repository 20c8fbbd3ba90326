package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gemini-mcp/gemini-mcp/pkg/backend"
)

func init() {
	rootCmd.AddCommand(backendsCmd)
	backendsCmd.Flags().BoolVar(&backendsJSONOutput, "json", false, "output in JSON format")
	addEnvFileFlag(backendsCmd, &backendsEnvFilePath)
}

var backendsJSONOutput bool
var backendsEnvFilePath string

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Show which backend serves each capability",
	Long: `Resolve the Gemini backend from GEMINI_API_KEY and GEMINI_CLI_PATH the same way
"gemini-mcp run" does, and print the backend serving each capability.`,
	Args: cobra.NoArgs,
	RunE: executeBackendsCmd,
}

// RouteInfo is one row of the routing table.
type RouteInfo struct {
	Capability string `json:"capability"`
	Backend    string `json:"backend"`
	Error      string `json:"error,omitempty"`
}

func executeBackendsCmd(cobraCmd *cobra.Command, args []string) error {
	cfg, err := loadBackend(cobraCmd, backendsEnvFilePath)
	if err != nil {
		return err
	}
	selector, err := newSelector(cfg)
	if err != nil {
		return err
	}

	routes := buildRouteInfo(selector)
	out := cobraCmd.OutOrStdout()
	if backendsJSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(routes)
	}

	fmt.Fprintf(out, "Model: %s\n", cfg.Model)
	fmt.Fprintf(out, "Configured via: %s\n\n", selector.ConfiguredVia())
	for _, r := range routes {
		if r.Error != "" {
			fmt.Fprintf(out, "  %-20s unavailable (%s)\n", r.Capability, r.Error)
			continue
		}
		fmt.Fprintf(out, "  %-20s %s\n", r.Capability, r.Backend)
	}
	return nil
}

func buildRouteInfo(selector *backend.Selector) []RouteInfo {
	routes := selector.Routes()
	info := make([]RouteInfo, 0, len(routes))
	for _, r := range routes {
		ri := RouteInfo{Capability: string(r.Capability), Backend: r.Kind.String()}
		if r.Err != nil {
			ri.Error = r.Err.Error()
		}
		info = append(info, ri)
	}
	return info
}
