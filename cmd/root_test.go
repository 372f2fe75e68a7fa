package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mj1618/winswitch/internal/model"
	"github.com/mj1618/winswitch/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"filter", "focus", "harpoon", "name", "move", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestCommand_Flags(t *testing.T) {
	tests := []struct {
		cmd      *cobra.Command
		name     string
		flagType string
	}{
		{rootCmd, "format", "string"},
		{rootCmd, "pretty", "bool"},
		{rootCmd, "config", "string"},
		{rootCmd, "snapshot", "string"},
		{rootCmd, "debug", "bool"},
		{filterCmd, "tab", "string"},
		{filterCmd, "command-mode", "bool"},
		{focusCmd, "slot", "string"},
		{focusCmd, "window-id", "string"},
		{serveCmd, "transport", "string"},
		{serveCmd, "port", "int"},
		{serveCmd, "cache-ttl", "int"},
	}

	for _, tt := range tests {
		f := tt.cmd.Flags().Lookup(tt.name)
		if f == nil {
			f = tt.cmd.PersistentFlags().Lookup(tt.name)
		}
		if f == nil {
			t.Errorf("%s: expected flag %q not found", tt.cmd.Name(), tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("%s: flag %q: expected type %q, got %q", tt.cmd.Name(), tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestHarpoonAndName_Subcommands(t *testing.T) {
	for parent, want := range map[*cobra.Command][]string{
		harpoonCmd: {"list", "assign", "unassign"},
		nameCmd:    {"list", "set", "clear"},
	} {
		found := map[string]bool{}
		for _, c := range parent.Commands() {
			found[c.Name()] = true
		}
		for _, name := range want {
			if !found[name] {
				t.Errorf("%s: expected subcommand %q", parent.Name(), name)
			}
		}
	}
}

// resetFlags restores every flag to its default; cobra keeps flag values
// between Execute calls on the same command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type env struct {
	dir      string
	config   string
	snapshot string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "data")

	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("data_dir: "+data+"\nown_class: winswitch\n"), 0o644))

	snap := model.Snapshot{
		ActiveID:     0x100,
		DesktopCount: 2,
		Windows: []model.Window{
			{ID: 0x100, Title: "Terminal", ClassName: "Alacritty", Instance: "alacritty", Desktop: 0},
			{ID: 0x200, Title: "Mozilla Firefox", ClassName: "firefox", Instance: "Navigator", Desktop: 0},
			{ID: 0x300, Title: "Save As", ClassName: "firefox", Instance: "Navigator", Type: model.Special, Desktop: 0},
		},
	}
	b, err := yaml.Marshal(snap)
	require.NoError(t, err)
	snapPath := filepath.Join(dir, "snapshot.yaml")
	require.NoError(t, os.WriteFile(snapPath, b, 0o644))

	return env{dir: dir, config: configPath, snapshot: snapPath}
}

// run executes the root command with the env's config and snapshot and
// returns what it printed.
func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	oldFormat, oldPretty := output.OutputFormat, output.PrettyOutput
	t.Cleanup(func() { output.OutputFormat, output.PrettyOutput = oldFormat, oldPretty })

	rootCmd.SetArgs(append([]string{"--config", e.config, "--snapshot", e.snapshot}, args...))

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := rootCmd.Execute()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func (e env) active(t *testing.T) model.WindowID {
	t.Helper()
	data, err := os.ReadFile(e.snapshot)
	require.NoError(t, err)
	var snap model.Snapshot
	require.NoError(t, yaml.Unmarshal(data, &snap))
	return snap.ActiveID
}

func TestFilter_EndToEnd(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "filter")
	require.NoError(t, err)

	var r output.FilterResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Len(t, r.Windows, 3)
	require.Equal(t, 1, r.Selected)
	require.Equal(t, "Special", r.Windows[2].Type, "special windows rank last")

	out, err = e.run(t, "filter", "--command-mode", "fire")
	require.NoError(t, err)
	r = output.FilterResult{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Equal(t, "Mozilla Firefox", r.Windows[0].Title)
	require.Equal(t, 0, r.Selected)
}

func TestFilter_BadFormatAndTab(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "--format", "xml", "filter")
	require.Error(t, err)

	_, err = e.run(t, "filter", "--tab", "apps")
	require.Error(t, err)
}

func TestFocus_EndToEnd(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "focus")
	require.NoError(t, err)
	require.Equal(t, model.WindowID(0x200), e.active(t), "empty query focuses the previous window")

	_, err = e.run(t, "focus", "term")
	require.NoError(t, err)
	require.Equal(t, model.WindowID(0x100), e.active(t))

	out, err := e.run(t, "focus", "nothing-like-this")
	require.NoError(t, err)
	var res output.ActionResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	require.False(t, res.OK)
	require.Contains(t, res.Message, "no target")
}

func TestHarpoon_EndToEnd(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "harpoon", "assign", "f", "0x200")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(e.dir, "data", "harpoon.json"))
	require.NoError(t, err)

	_, err = e.run(t, "focus", "--slot", "f")
	require.NoError(t, err)
	require.Equal(t, model.WindowID(0x200), e.active(t))

	out, err := e.run(t, "harpoon", "list")
	require.NoError(t, err)
	var list output.HarpoonList
	require.NoError(t, yaml.Unmarshal([]byte(out), &list))
	require.Len(t, list.Slots, 1)
	require.Equal(t, "f", list.Slots[0].Key)

	_, err = e.run(t, "harpoon", "unassign", "f")
	require.NoError(t, err)
	out, err = e.run(t, "focus", "--slot", "f")
	require.NoError(t, err)
	require.Contains(t, out, "ok: false")

	_, err = e.run(t, "harpoon", "assign", "?", "0x200")
	require.Error(t, err)
}

func TestName_EndToEnd(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "name", "set", "0x100", "build", "shell")
	require.NoError(t, err)

	out, err := e.run(t, "--format", "json", "filter", "build")
	require.NoError(t, err)
	require.Contains(t, out, `"custom_name":"build shell"`)

	out, err = e.run(t, "name", "list")
	require.NoError(t, err)
	var list output.NameList
	require.NoError(t, yaml.Unmarshal([]byte(out), &list))
	require.Len(t, list.Names, 1)
	require.True(t, list.Names[0].Assigned)

	out, err = e.run(t, "name", "clear", "0x100")
	require.NoError(t, err)
	require.Contains(t, out, "ok: true")

	_, err = e.run(t, "name", "set", "0x999", "ghost")
	require.Error(t, err)
}

func TestMove_EndToEnd(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "move", "0x200", "2")
	require.NoError(t, err)

	out, err := e.run(t, "filter", "--tab", "workspaces")
	require.NoError(t, err)
	var r output.FilterResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Len(t, r.Workspaces, 2)
	require.Equal(t, 1, r.Workspaces[1].Windows)
}
