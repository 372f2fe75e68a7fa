// Package server exposes the switcher over the Model Context Protocol so
// agents can rank, focus and bookmark windows without a shell round trip.
package server

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/pipeline"
	"github.com/mj1618/winswitch/internal/platform"
	"github.com/mj1618/winswitch/internal/registry"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Version   string
}

// Server wraps the MCP server with the platform provider, the snapshot cache
// and the switcher pipeline. The pipeline is not safe for concurrent use, so
// every handler holds mu.
type Server struct {
	provider *platform.Provider
	cache    *SnapshotCache
	mu       sync.Mutex
	pipe     *pipeline.Pipeline
	mcp      *mcpserver.MCPServer
}

// New creates and configures an MCP server with all winswitch tools.
func New(provider *platform.Provider, pipe *pipeline.Pipeline, cfg Config) *Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		provider: provider,
		cache:    NewSnapshotCache(provider.Source, cfg.CacheTTL),
		pipe:     pipe,
	}
	s.mcp = mcpserver.NewMCPServer("winswitch", version, mcpserver.WithToolCapabilities(false))
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	log := logging.ForComponent(logging.CompServer)
	switch cfg.Transport {
	case "stdio":
		log.Info("serving MCP", "transport", cfg.Transport)
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info("serving MCP", "transport", cfg.Transport, "addr", addr)
		return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// WatchRegistries reloads the harpoon and named window registries whenever
// another process (a second switcher instance, a user's editor) rewrites
// their files. It returns once the watcher is running.
func (s *Server) WatchRegistries(ctx context.Context) error {
	harpoonPath, namesPath := s.pipe.Harpoon().Path(), s.pipe.Names().Path()
	var paths []string
	for _, p := range []string{harpoonPath, namesPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	events, err := registry.Watch(ctx, paths...)
	if err != nil {
		return err
	}
	go func() {
		for ev := range events {
			s.reload(ev.Path)
		}
	}()
	return nil
}

func (s *Server) reload(path string) {
	log := logging.ForComponent(logging.CompServer)
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch filepath.Clean(path) {
	case filepath.Clean(s.pipe.Harpoon().Path()):
		err = s.pipe.Harpoon().Load()
	case filepath.Clean(s.pipe.Names().Path()):
		err = s.pipe.Names().Load()
	default:
		return
	}
	if err != nil {
		log.Warn("registry reload failed", "path", path, "error", err)
		return
	}
	log.Debug("registry reloaded", "path", path)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("filter",
			mcp.WithDescription("Rank open windows (or workspaces) against a query, most relevant first. An empty query lists every window in most-recently-used order with the previously active window selected."),
			mcp.WithString("query", mcp.Description("Search text matched against titles, custom names, classes and workspace numbers")),
			mcp.WithString("tab", mcp.Description("What to list"), mcp.Enum("windows", "workspaces")),
			mcp.WithBoolean("command_mode", mcp.Description("Suppress the alt-tab preselection of the previous window")),
		),
		s.handleFilter,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Activate a window: the one bound to a harpoon slot, a window by id, or the selected result of a query"),
			mcp.WithString("slot", mcp.Description("Harpoon key (0-9, a-z)")),
			mcp.WithString("window_id", mcp.Description("Window id, decimal or 0x hex")),
			mcp.WithString("query", mcp.Description("Filter query; the selected result is activated")),
		),
		s.handleFocus,
	)

	s.mcp.AddTool(
		mcp.NewTool("harpoon_assign",
			mcp.WithDescription("Bookmark a window under a harpoon key. The window leaves any slot it held before."),
			mcp.WithString("key", mcp.Required(), mcp.Description("Harpoon key (0-9, a-z)")),
			mcp.WithString("window_id", mcp.Required(), mcp.Description("Window id, decimal or 0x hex")),
		),
		s.handleHarpoonAssign,
	)

	s.mcp.AddTool(
		mcp.NewTool("harpoon_unassign",
			mcp.WithDescription("Clear a harpoon slot"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Harpoon key (0-9, a-z)")),
		),
		s.handleHarpoonUnassign,
	)

	s.mcp.AddTool(
		mcp.NewTool("harpoon_list",
			mcp.WithDescription("List the assigned harpoon slots"),
		),
		s.handleHarpoonList,
	)

	s.mcp.AddTool(
		mcp.NewTool("name_set",
			mcp.WithDescription("Give a window a custom name that is searchable and survives application restarts. An empty name removes it."),
			mcp.WithString("window_id", mcp.Required(), mcp.Description("Window id, decimal or 0x hex")),
			mcp.WithString("name", mcp.Description("Custom name")),
		),
		s.handleNameSet,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_workspaces",
			mcp.WithDescription("List workspaces with their window counts, optionally filtered"),
			mcp.WithString("query", mcp.Description("Search text matched against workspace names and numbers")),
		),
		s.handleListWorkspaces,
	)

	s.mcp.AddTool(
		mcp.NewTool("move_window",
			mcp.WithDescription("Move a window to another workspace"),
			mcp.WithString("window_id", mcp.Required(), mcp.Description("Window id, decimal or 0x hex")),
			mcp.WithString("workspace", mcp.Required(), mcp.Description("1-based workspace number, or \"sticky\" for all workspaces")),
		),
		s.handleMoveWindow,
	)
}
