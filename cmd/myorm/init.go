package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gopsql/myorm"
)

var initCmd = &cobra.Command{
	Use:     "init <schema>...",
	Short:   "Create missing tables",
	Long:    `Create the table of each schema file unless it already exists.`,
	Example: `  myorm init schemas/*.yaml --dsn "root:secret@tcp(localhost:3306)/shop"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withModels(cmd, args, "", func(ctx context.Context, models []*myorm.Model) error {
			for _, m := range models {
				created, err := m.Init(ctx)
				if err != nil {
					return err
				}
				if created {
					printf(cmd, success, "created %s", m.TableName())
				} else {
					printf(cmd, warning, "%s already exists", m.TableName())
				}
			}
			return nil
		})
	},
}
