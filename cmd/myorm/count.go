package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopsql/myorm"
)

var (
	countModel string
	countWhere string
)

var countCmd = &cobra.Command{
	Use:     "count <schema>",
	Short:   "Count rows matching a filter",
	Example: `  myorm count schemas/product.yaml --where '{"price": {"$lt": 10}}'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter myorm.Filter
		if countWhere != "" {
			var err error
			if filter, err = myorm.ParseFilter([]byte(countWhere)); err != nil {
				return fmt.Errorf("--where: %w", err)
			}
			if _, err := myorm.CompileWhere(filter, ""); err != nil {
				return fmt.Errorf("--where: %w", err)
			}
		}
		return withModels(cmd, args, countModel, func(ctx context.Context, models []*myorm.Model) error {
			n, err := models[0].Count(ctx, filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		})
	},
}

func init() {
	f := countCmd.Flags()
	f.StringVar(&countModel, "model", "", "model name (default: from file name)")
	f.StringVar(&countWhere, "where", "", "filter as YAML or JSON")
}
