package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mj1618/winswitch/internal/logging"
	"github.com/mj1618/winswitch/internal/model"
)

// harpoonRecord is one entry of harpoon.json.
type harpoonRecord struct {
	Slot      int    `json:"slot"`
	WindowID  uint64 `json:"window_id"`
	Title     string `json:"title"`
	ClassName string `json:"class_name"`
	Instance  string `json:"instance"`
	Type      string `json:"type"`
}

type harpoonFile struct {
	Slots []harpoonRecord `json:"harpoon_slots"`
}

// nameRecord is one entry of names.json.
type nameRecord struct {
	WindowID      uint64 `json:"window_id"`
	CustomName    string `json:"custom_name"`
	OriginalTitle string `json:"original_title"`
	ClassName     string `json:"class_name"`
	Instance      string `json:"instance"`
	Type          string `json:"type"`
	Assigned      flag   `json:"assigned"`
}

type namesFile struct {
	NamedWindows []nameRecord `json:"named_windows"`
}

// flag is written as 0 or 1. Booleans are accepted when reading.
type flag bool

func (f flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *flag) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "1", "true":
		*f = true
	case "0", "false", "null":
		*f = false
	default:
		return fmt.Errorf("invalid assigned value %s", b)
	}
	return nil
}

// readEntries reads a registry file and returns the raw entries under key.
// A missing file yields no entries. A file that is not a JSON object is
// logged and treated as empty.
func readEntries(path, key string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.ForComponent(logging.CompRegistry).Warn("ignoring malformed registry file", "path", path, "error", err)
		return nil, nil
	}
	raw, ok := doc[key]
	if !ok {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		logging.ForComponent(logging.CompRegistry).Warn("ignoring malformed registry list", "path", path, "key", key, "error", err)
		return nil, nil
	}
	return entries, nil
}

// loadHarpoonRecords decodes harpoon.json, skipping entries that fail to
// decode or name a slot outside the valid range.
func loadHarpoonRecords(path string) ([]harpoonRecord, error) {
	raw, err := readEntries(path, "harpoon_slots")
	if err != nil {
		return nil, err
	}
	log := logging.ForComponent(logging.CompRegistry)
	var out []harpoonRecord
	for i, r := range raw {
		var rec harpoonRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			log.Debug("skipping harpoon entry", "index", i, "error", err)
			continue
		}
		if rec.Slot < 0 || rec.Slot >= SlotCount {
			log.Debug("skipping harpoon entry", "index", i, "slot", rec.Slot)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// loadNameRecords decodes names.json, skipping entries that fail to decode
// or carry no custom name.
func loadNameRecords(path string) ([]nameRecord, error) {
	raw, err := readEntries(path, "named_windows")
	if err != nil {
		return nil, err
	}
	log := logging.ForComponent(logging.CompRegistry)
	var out []nameRecord
	for i, r := range raw {
		var rec nameRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			log.Debug("skipping named window entry", "index", i, "error", err)
			continue
		}
		if rec.CustomName == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func saveHarpoonRecords(path string, recs []harpoonRecord) error {
	if recs == nil {
		recs = []harpoonRecord{}
	}
	return writeJSON(path, harpoonFile{Slots: recs})
}

func saveNameRecords(path string, recs []nameRecord) error {
	if recs == nil {
		recs = []nameRecord{}
	}
	return writeJSON(path, namesFile{NamedWindows: recs})
}

// writeJSON writes v to path through a temporary file and rename so readers
// never observe a partially written file.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

func recordIdentity(id uint64, title, class, instance, typ string) Identity {
	return Identity{
		WindowID:  model.WindowID(id),
		Title:     title,
		ClassName: class,
		Instance:  instance,
		Type:      model.ParseWindowType(typ),
	}
}
