package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usestring/json2struct/internal/config"
	"github.com/usestring/json2struct/internal/logging"
	"github.com/usestring/json2struct/internal/mcp"
)

// app carries state shared by subcommands.
type app struct {
	cfg        *config.Config
	logCleanup func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "json2struct",
		Short: "Generate Go struct declarations from JSON and YAML samples",
		Long: "json2struct reads a sample document and prints a Go struct type that decodes it.\n" +
			"Objects become inline structs, arrays of objects become []struct typed after\n" +
			"their first element, and every field is tagged with its original key.",
		Version:       mcp.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			cleanup, err := logging.Setup(a.cfg.Logging())
			if err != nil {
				return fmt.Errorf("unable to configure logging: %w", err)
			}
			a.logCleanup = cleanup
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCleanup != nil {
				return a.logCleanup()
			}
			return nil
		},
	}

	root.AddCommand(newGenCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}
