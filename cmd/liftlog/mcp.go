package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/meltforce/liftlog/internal/config"
	"github.com/meltforce/liftlog/internal/mcp"
)

func mcpCmd() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server on stdio",
		Long: "Run an MCP server on stdio. By default it reads the local store; with --remote " +
			"it queries a running 'liftlog serve' instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so logs go to stderr.
			if remote != "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				log := newLogger(os.Stderr, cfg)
				log.Info("mcp server starting", "mode", "remote", "url", remote)
				return server.ServeStdio(mcp.New(mcp.NewHTTPClient(remote), Version, log))
			}

			a, err := openApp(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			a.log.Info("mcp server starting", "mode", "local", "storage", a.cfg.Storage.Path)
			return server.ServeStdio(mcp.New(mcp.NewLocalSource(a.store), Version, a.log))
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "base URL of a liftlog server, e.g. http://liftlog.tailnet.ts.net")
	return cmd
}
