package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

// DumpscopeConfig represents configuration for the dumpscope tool
type DumpscopeConfig struct {
	Debug         bool `json:"debug" jsonschema:"title=Debug,description=Enable debug logging"`
	RowWidth      int  `json:"rowWidth" jsonschema:"title=Row Width,description=Bytes shown per dump row"`
	MinRunLength  int  `json:"minRunLength" jsonschema:"title=Minimum Run Length,description=Minimum length for detected ASCII strings"`
	ContextRadius int  `json:"contextRadius" jsonschema:"title=Context Radius,description=Context bytes shown around the selected row"`
}

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "Generate JSON schema for configuration",
	Long:   "Generate JSON schema for the dumpscope configuration",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := new(jsonschema.Reflector)
		bts, err := json.MarshalIndent(reflector.Reflect(&DumpscopeConfig{}), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		fmt.Println(string(bts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
