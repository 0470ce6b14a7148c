package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg *config

	cfgFile string
	verbose bool
)

var (
	success = color.New(color.FgGreen, color.Bold)
	warning = color.New(color.FgYellow, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
)

var rootCmd = &cobra.Command{
	Use:   "myorm",
	Short: "Manage MySQL tables of myorm schemas",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = loadConfig(cfgFile, cmd)
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default: .myorm.yaml in current or home directory)")
	f.String("dsn", "", `database DSN, like "root:secret@tcp(localhost:3306)/shop"`)
	f.BoolVarP(&verbose, "verbose", "v", false, "log SQL statements")

	rootCmd.AddCommand(ddlCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(countCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		failure.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printf(cmd *cobra.Command, c *color.Color, format string, args ...interface{}) {
	c.Fprintf(cmd.OutOrStdout(), format, args...)
	fmt.Fprintln(cmd.OutOrStdout())
}
