package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/model"
	"github.com/mj1618/winswitch/internal/pipeline"
	"github.com/mj1618/winswitch/internal/platform"
	"github.com/mj1618/winswitch/internal/platform/snapshotfile"
	"github.com/mj1618/winswitch/internal/registry"
	"github.com/spf13/cobra"
)

// session is what one command invocation works on: a provider, the
// pipeline over the persisted registries, and a fresh snapshot loaded into it.
type session struct {
	provider *platform.Provider
	pipe     *pipeline.Pipeline
}

// newProvider returns the snapshot file backend when --snapshot is set, the
// registered window system backend otherwise.
func newProvider() (*platform.Provider, error) {
	path, _ := rootCmd.PersistentFlags().GetString("snapshot")
	if path != "" {
		return snapshotfile.New(path).Provider(), nil
	}
	return platform.NewProvider()
}

// newPipeline loads the registries from the data directory. Unreadable
// registry files are logged and start empty.
func newPipeline() *pipeline.Pipeline {
	log := logging.ForComponent(logging.CompCLI)

	harpoon := registry.NewHarpoon(cfg.HarpoonPath())
	if err := harpoon.Load(); err != nil {
		log.Warn("harpoon load failed", "path", cfg.HarpoonPath(), "error", err)
	}
	names := registry.NewNames(cfg.NamesPath())
	if err := names.Load(); err != nil {
		log.Warn("named windows load failed", "path", cfg.NamesPath(), "error", err)
	}

	return pipeline.New(harpoon, names, pipeline.Options{
		OwnClass:        cfg.OwnClass,
		OwnPID:          os.Getpid(),
		HistoryCapacity: cfg.HistoryCapacity,
	})
}

func openSession(ctx context.Context) (*session, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, err
	}
	if provider.Source == nil {
		return nil, fmt.Errorf("window listing not available: %w", platform.ErrUnsupported)
	}
	snap, err := provider.Source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	s := &session{provider: provider, pipe: newPipeline()}
	s.pipe.Refresh(snap)
	return s, nil
}

// window resolves a window id argument against the session's snapshot.
func (s *session) window(arg string) (model.Window, error) {
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

func queryArg(args []string) string {
	return strings.Join(args, " ")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
