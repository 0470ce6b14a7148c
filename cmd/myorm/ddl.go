package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopsql/myorm"
)

var ddlModel string

var ddlCmd = &cobra.Command{
	Use:   "ddl <schema>...",
	Short: "Print CREATE TABLE statements",
	Long:  `Print the CREATE TABLE statement of each schema file. No database is needed.`,
	Example: `  myorm ddl schemas/product.yaml
  myorm ddl product.json --model Product`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := readSchemas(args, ddlModel)
		if err != nil {
			return err
		}
		for _, f := range files {
			m, err := myorm.NewModel(f.model, f.schema)
			if err != nil {
				return fmt.Errorf("%s: %w", f.path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", m.DDL())
		}
		return nil
	},
}

func init() {
	ddlCmd.Flags().StringVar(&ddlModel, "model", "", "model name (default: from file name)")
}
