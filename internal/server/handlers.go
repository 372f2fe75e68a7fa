package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/model"
	"github.com/mj1618/winswitch/internal/output"
	"github.com/mj1618/winswitch/internal/pipeline"
	"github.com/mj1618/winswitch/internal/platform"
	"github.com/mj1618/winswitch/internal/registry"
	"gopkg.in/yaml.v3"
)

// toText serializes a tool result to YAML for the MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(toText(v)), nil
}

// actionError reports a failed action as a tool error rather than a protocol
// error, so the agent sees why it failed.
func actionError(action string, err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(toText(output.ActionResult{OK: false, Action: action, Message: err.Error()})), nil
}

// refresh loads a snapshot (cached) into the pipeline. The caller must hold
// s.mu.
func (s *Server) refresh(ctx context.Context) error {
	snap, err := s.cache.Snapshot(ctx)
	if err != nil {
		return err
	}
	s.pipe.Refresh(snap)
	return nil
}

// liveWindow resolves a window id argument against the current snapshot.
func (s *Server) liveWindow(arg string) (model.Window, error) {
	id, err := platform.ParseWindowID(arg)
	if err != nil {
		return model.Window{}, err
	}
	w, ok := s.pipe.Snapshot().Find(id)
	if !ok {
		return model.Window{}, fmt.Errorf("%w: window %s is not open", pipeline.ErrNoTarget, arg)
	}
	return w, nil
}

func (s *Server) handleFilter(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tab, err := pipeline.ParseTab(request.GetString("tab", "windows"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return actionError("filter", err)
	}
	s.pipe.SetTab(tab)
	s.pipe.SetCommandMode(request.GetBool("command_mode", false))
	r := s.pipe.Filter(request.GetString("query", ""))
	return textResult(output.NewFilterResult(r))
}

func (s *Server) handleListWorkspaces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return actionError("list_workspaces", err)
	}
	prev := s.pipe.Tab()
	s.pipe.SetTab(pipeline.TabWorkspaces)
	r := s.pipe.Filter(request.GetString("query", ""))
	s.pipe.SetTab(prev)
	return textResult(output.NewFilterResult(r))
}

func (s *Server) handleFocus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slot := request.GetString("slot", "")
	windowID := request.GetString("window_id", "")
	query := request.GetString("query", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider.WindowManager == nil {
		return actionError("focus", platform.ErrUnsupported)
	}
	if err := s.refresh(ctx); err != nil {
		return actionError("focus", err)
	}

	var target model.Window
	var err error
	switch {
	case slot != "":
		var key rune
		if key, err = registry.ParseSlotKey(slot); err == nil {
			target, err = s.pipe.HarpoonTarget(key)
		}
	case windowID != "":
		target, err = s.liveWindow(windowID)
	default:
		s.pipe.SetTab(pipeline.TabWindows)
		s.pipe.SetCommandMode(false)
		s.pipe.Filter(query)
		var item pipeline.Item
		if item, err = s.pipe.Selected(); err == nil {
			target = item.Window
		}
	}
	if err != nil {
		if errors.Is(err, pipeline.ErrNoTarget) {
			logging.ForComponent(logging.CompServer).Info("focus without target", "slot", slot, "window_id", windowID, "query", query)
		}
		return actionError("focus", err)
	}

	if err := s.provider.WindowManager.Activate(ctx, target.ID); err != nil {
		return actionError("focus", err)
	}
	s.cache.Invalidate()
	return textResult(output.ActionResult{OK: true, Action: "focus", Window: output.WindowOf(target)})
}

func (s *Server) handleHarpoonAssign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyArg, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	idArg, err := request.RequireString("window_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := registry.ParseSlotKey(keyArg)
	if err != nil {
		return actionError("harpoon_assign", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return actionError("harpoon_assign", err)
	}
	w, err := s.liveWindow(idArg)
	if err != nil {
		return actionError("harpoon_assign", err)
	}
	if err := s.pipe.Harpoon().Assign(key, w); err != nil {
		return actionError("harpoon_assign", err)
	}
	return textResult(output.ActionResult{OK: true, Action: "harpoon_assign", Key: string(key), Window: output.WindowOf(w)})
}

func (s *Server) handleHarpoonUnassign(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyArg, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := registry.ParseSlotKey(keyArg)
	if err != nil {
		return actionError("harpoon_unassign", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pipe.Harpoon().Unassign(key); err != nil {
		return actionError("harpoon_unassign", err)
	}
	return textResult(output.ActionResult{OK: true, Action: "harpoon_unassign", Key: string(key)})
}

func (s *Server) handleHarpoonList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return actionError("harpoon_list", err)
	}
	return textResult(output.NewHarpoonList(s.pipe.Harpoon().Slots(), s.pipe.Snapshot()))
}

func (s *Server) handleNameSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idArg, err := request.RequireString("window_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name := request.GetString("name", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return actionError("name_set", err)
	}
	w, err := s.liveWindow(idArg)
	if err != nil {
		return actionError("name_set", err)
	}
	if err := s.pipe.Names().Assign(w, name); err != nil {
		return actionError("name_set", err)
	}
	return textResult(output.ActionResult{OK: true, Action: "name_set", Name: name, Window: output.WindowOf(w)})
}

func (s *Server) handleMoveWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idArg, err := request.RequireString("window_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	wsArg, err := request.RequireString("workspace")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desktop, err := platform.ParseDesktop(wsArg)
	if err != nil {
		return actionError("move_window", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider.WindowManager == nil {
		return actionError("move_window", platform.ErrUnsupported)
	}
	if err := s.refresh(ctx); err != nil {
		return actionError("move_window", err)
	}
	w, err := s.liveWindow(idArg)
	if err != nil {
		return actionError("move_window", err)
	}
	if err := s.provider.WindowManager.MoveToDesktop(ctx, w.ID, desktop); err != nil {
		return actionError("move_window", err)
	}
	s.cache.Invalidate()
	w.Desktop = desktop
	return textResult(output.ActionResult{OK: true, Action: "move_window", Window: output.WindowOf(w)})
}
