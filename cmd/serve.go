package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/winswitch/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing winswitch tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes window ranking,
focusing, harpoon bookmarks and custom names as tools. The server keeps one
window history for its lifetime, so alt-tab ordering builds up across calls,
and reloads the registries when another process rewrites them.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  winswitch serve
  winswitch serve --transport streamable-http --port 8080
  winswitch serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Window snapshot cache TTL in milliseconds (0 to disable; default from cache_ttl_ms)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs := cfg.CacheTTLMs
	if cmd.Flags().Changed("cache-ttl") {
		cacheTTLMs, _ = cmd.Flags().GetInt("cache-ttl")
	}

	provider, err := newProvider()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	srvCfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Version:   version,
	}
	srv := server.New(provider, newPipeline(), srvCfg)
	if err := srv.WatchRegistries(commandContext(cmd)); err != nil {
		return fmt.Errorf("watch registries: %w", err)
	}
	return srv.Serve(srvCfg)
}
