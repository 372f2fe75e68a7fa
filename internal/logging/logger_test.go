package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit_DiscardsWithoutDir(t *testing.T) {
	Init(Config{})
	defer Shutdown()
	ForComponent(CompHistory).Info("dropped")
}

func TestInit_WritesToLogDir(t *testing.T) {
	dir := t.TempDir()
	Init(Config{Dir: dir, Level: "debug"})
	ForComponent(CompRegistry).Debug("rebound", "slot", "a")
	Shutdown()

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"component":"registry"`)
	require.Contains(t, string(data), `"msg":"rebound"`)
}

func TestInit_DebugUsesFallback(t *testing.T) {
	dir := t.TempDir()
	Init(Config{Fallback: dir, Debug: true})
	ForComponent(CompPipeline).Debug("filtered")
	Shutdown()

	_, err := os.Stat(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
}

func TestSetOutput_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, Config{Format: "text"})
	defer Init(Config{})

	ForComponent(CompServer).Info("started", "transport", "stdio")
	require.True(t, strings.Contains(buf.String(), "component=server"), buf.String())
}

func TestSetOutput_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, Config{Level: "warn"})
	defer Init(Config{})

	Logger().Info("hidden")
	Logger().Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "shown", rec["msg"])
}
