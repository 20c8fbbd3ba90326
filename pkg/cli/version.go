package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print gemini-mcp's version",
	Args:  cobra.NoArgs,
	Run:   executeVersionCmd,
}

func executeVersionCmd(cobraCmd *cobra.Command, args []string) {
	fmt.Fprintf(cobraCmd.OutOrStdout(), "gemini-mcp version %s\n", cliVersion)
}
