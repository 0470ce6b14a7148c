package main

import (
	"context"
	"fmt"

	"github.com/gopsql/logger"
	"github.com/spf13/cobra"

	"github.com/gopsql/myorm"
	"github.com/gopsql/myorm/mysql"
)

// withModels connects to the database and runs fn with a model for each
// schema file.
func withModels(cmd *cobra.Command, paths []string, model string, fn func(context.Context, []*myorm.Model) error) error {
	files, err := readSchemas(paths, model)
	if err != nil {
		return err
	}
	connConfig, err := cfg.connection()
	if err != nil {
		return err
	}
	conn, err := mysql.Open(connConfig)
	if err != nil {
		return err
	}
	defer conn.Close()
	if verbose {
		conn.SetLogger(logger.StandardLogger)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := conn.Connect(ctx); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	models := make([]*myorm.Model, 0, len(files))
	for _, f := range files {
		m, err := conn.Model(f.model, f.schema)
		if err != nil {
			return fmt.Errorf("%s: %w", f.path, err)
		}
		models = append(models, m)
	}
	return fn(ctx, models)
}
