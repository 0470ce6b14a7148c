package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gopsql/myorm"
)

var existsCmd = &cobra.Command{
	Use:   "exists <schema>...",
	Short: "Report whether tables exist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withModels(cmd, args, "", func(ctx context.Context, models []*myorm.Model) error {
			for _, m := range models {
				exists, err := m.TableExists(ctx)
				if err != nil {
					return err
				}
				if exists {
					printf(cmd, success, "%s exists", m.TableName())
				} else {
					printf(cmd, failure, "%s does not exist", m.TableName())
				}
			}
			return nil
		})
	},
}
