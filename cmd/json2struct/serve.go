package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/usestring/json2struct/pkg/mcpsrv"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the json2struct MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := mcpsrv.NewServer(
				mcpsrv.WithoutLogSetup(),
				mcpsrv.WithTagKey(a.cfg.TagKey),
				mcpsrv.WithIndentWidth(a.cfg.IndentWidth),
				mcpsrv.WithGofmt(a.cfg.Gofmt),
				mcpsrv.WithCacheSize(a.cfg.CacheMaxItems),
			)
			if err != nil {
				return err
			}
			defer server.Close()

			slog.Info("starting json2struct MCP server on stdio")
			if err := server.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			slog.Info("server stopped")
			return nil
		},
	}
}
