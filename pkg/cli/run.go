package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gemini-mcp/gemini-mcp/pkg/cli/utils"
	serverconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/server"
	"github.com/gemini-mcp/gemini-mcp/pkg/runtime"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runServerConfigPath, "server-config", "s", "", "the path to the server config file (default: stdio with default logging)")
	runCmd.Flags().StringVar(&runTransport, "transport", "", "override the transport protocol (stdio or streamablehttp)")
	runCmd.Flags().BoolVarP(&detach, "detach", "d", false, "whether to detach when running (streamablehttp only)")
	addEnvFileFlag(runCmd, &runEnvFilePath)
}

var runServerConfigPath string
var runTransport string
var runEnvFilePath string
var detach bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Gemini MCP server",
	Args:  cobra.NoArgs,
	Run:   executeRunCmd,
}

// Errors go to stderr: under stdio transport stdout carries the protocol.
func executeRunCmd(cobraCmd *cobra.Command, args []string) {
	serverConfigPath, err := absPath(runServerConfigPath)
	if err != nil {
		exitWithError("invalid server config path", err)
	}

	backendCfg, err := loadBackend(cobraCmd, runEnvFilePath)
	if err != nil {
		exitWithError("failed to load configuration", err)
	}

	opts := runtime.RunOptions{
		ServerConfigPath: serverConfigPath,
		Transport:        runTransport,
		Backend:          backendCfg,
	}

	if detach {
		if err := startDetached(cobraCmd, opts); err != nil {
			exitWithError("failed to start gemini-mcp server", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runtime.RunServer(ctx, opts); err != nil {
		exitWithError("gemini-mcp server failed", err)
	}
}

// startDetached re-runs this binary without --detach and records its pid
// for `gemini-mcp stop`.
func startDetached(cobraCmd *cobra.Command, opts runtime.RunOptions) error {
	configFile, err := runtime.LoadConfig(opts)
	if err != nil {
		return err
	}
	if configFile.Runtime.TransportProtocol == serverconfig.TransportProtocolStdio {
		return fmt.Errorf("cannot detach a server using the stdio transport")
	}

	args := []string{"run"}
	if opts.ServerConfigPath != "" {
		args = append(args, "-s", opts.ServerConfigPath)
	}
	if opts.Transport != "" {
		args = append(args, "--transport", opts.Transport)
	}
	envFile, err := absPath(runEnvFilePath)
	if err == nil && envFile != "" {
		args = append(args, "--env-file", envFile)
	}

	cmd := exec.Command(os.Args[0], args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	info := utils.ProcessInfo{
		PID:              cmd.Process.Pid,
		Name:             runtime.ServerName,
		Version:          runtime.ServerVersion,
		Transport:        configFile.Runtime.TransportProtocol,
		StartedAt:        time.Now(),
		ServerConfigPath: opts.ServerConfigPath,
		EnvFilePath:      envFile,
	}
	if httpConfig := configFile.Runtime.StreamableHTTPConfig; httpConfig != nil {
		info.Port = httpConfig.Port
	}

	processManager, err := utils.GetProcessManager()
	if err == nil {
		err = processManager.SaveProcess(processKey(opts.ServerConfigPath), info)
	}
	if err != nil {
		fmt.Fprintf(cobraCmd.ErrOrStderr(), "failed to save pid for gemini-mcp server, to stop the server you will need to manually kill pid %d: %s\n", info.PID, err.Error())
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "successfully started gemini-mcp server on port %d (pid %d)...\n", info.Port, info.PID)
	return nil
}

// processKey identifies a detached server by its config file.
func processKey(serverConfigPath string) string {
	if serverConfigPath == "" {
		return "default"
	}
	return serverConfigPath
}

func exitWithError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", msg, err.Error())
	os.Exit(1)
}
