package cli

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	serverconfig "github.com/gemini-mcp/gemini-mcp/pkg/config/server"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the server config file",
	Args:  cobra.NoArgs,
	RunE:  executeSchemaCmd,
}

func executeSchemaCmd(cobraCmd *cobra.Command, args []string) error {
	schemaJSON, err := json.MarshalIndent(serverConfigSchema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = cobraCmd.OutOrStdout().Write(append(schemaJSON, '\n'))
	return err
}

func serverConfigSchema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	schema := reflector.Reflect(&serverconfig.MCPServerConfigFile{})
	schema.Title = "gemini-mcp server config " + serverconfig.SchemaVersion
	return schema
}
