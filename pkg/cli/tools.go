package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gemini-mcp/gemini-mcp/pkg/tools"
)

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.Flags().BoolVar(&toolsJSONOutput, "json", false, "output the tool definitions in JSON format")
}

var toolsJSONOutput bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the server exposes",
	Args:  cobra.NoArgs,
	RunE:  executeToolsCmd,
}

func executeToolsCmd(cobraCmd *cobra.Command, args []string) error {
	catalog := tools.Catalog()
	if toolsJSONOutput {
		return writeToolsJSON(cobraCmd.OutOrStdout(), catalog)
	}

	out := cobraCmd.OutOrStdout()
	fmt.Fprintf(out, "Tools (%d):\n", len(catalog))
	for _, t := range catalog {
		fmt.Fprintf(out, "  %-32s %-20s %s\n", t.Name, t.Capability, truncateString(t.Description, 60))
	}
	return nil
}

func writeToolsJSON(w io.Writer, catalog []*tools.Tool) error {
	defs := make([]any, 0, len(catalog))
	for _, t := range catalog {
		defs = append(defs, t.MCPTool())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(defs)
}
