package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gemini-mcp/gemini-mcp/pkg/cli/utils"
)

func init() {
	rootCmd.AddCommand(stopCmd)
	stopCmd.Flags().StringVarP(&stopServerConfigPath, "server-config", "s", "", "the server config file the server was started with")
}

var stopServerConfigPath string

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a detached Gemini MCP server",
	Args:  cobra.NoArgs,
	Run:   executeStopCmd,
}

func executeStopCmd(cobraCmd *cobra.Command, args []string) {
	out := cobraCmd.OutOrStdout()

	serverConfigPath, err := absPath(stopServerConfigPath)
	if err != nil {
		fmt.Fprintf(out, "invalid server config path: %s\n", err.Error())
		return
	}
	key := processKey(serverConfigPath)

	processManager, err := utils.GetProcessManager()
	if err != nil {
		fmt.Fprintf(out, "failed to open process records: %s\n", err.Error())
		return
	}

	info, err := processManager.GetProcess(key)
	if err != nil {
		fmt.Fprintf(out, "failed to get pid for gemini-mcp server: %s\n", err.Error())
		return
	}

	if !utils.IsProcessAlive(info.PID) {
		fmt.Fprintf(out, "gemini-mcp server with pid %d is no longer running\n", info.PID)
		if err := processManager.DeleteProcess(key); err != nil {
			fmt.Fprintf(out, "failed to delete process record: %s\n", err.Error())
		}
		return
	}

	proc, err := os.FindProcess(info.PID)
	if err != nil {
		fmt.Fprintf(out, "failed to find process for pid %d: %s\n", info.PID, err.Error())
		return
	}

	// SIGTERM lets the server drain HTTP connections before exiting.
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		fmt.Fprintf(out, "failed to stop gemini-mcp process with pid %d: %s\n", info.PID, err.Error())
		return
	}

	if err := processManager.DeleteProcess(key); err != nil {
		fmt.Fprintf(out, "failed to delete process record: %s\n", err.Error())
	}

	fmt.Fprintf(out, "successfully stopped gemini-mcp server...\n")
}
