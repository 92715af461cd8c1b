// Package manifest manages the run index file (runs.json) that tracks all
// parsed results in an output directory.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/sonnes/tally/core"
)

// Filename is the manifest file name within an output directory.
const Filename = "runs.json"

// Manifest holds the list of run metadata entries.
type Manifest struct {
	Entries []core.RunEntry `json:"entries"`
}

// ReadFile reads a manifest from disk. Returns an empty Manifest if the file
// does not exist.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert adds or replaces an entry. Two entries describe the same run when
// they agree on session id, task, mode, model, and repetition. After
// upserting, entries are sorted by task, mode, model, then repetition.
func (m *Manifest) Upsert(entry core.RunEntry) {
	for i, e := range m.Entries {
		if sameRun(e, entry) {
			m.Entries[i] = entry
			m.sort()
			return
		}
	}
	m.Entries = append(m.Entries, entry)
	m.sort()
}

func sameRun(a, b core.RunEntry) bool {
	return a.SessionID == b.SessionID &&
		a.TaskName == b.TaskName &&
		a.ModeName == b.ModeName &&
		a.ModelName == b.ModelName &&
		a.Repetition == b.Repetition
}

func (m *Manifest) sort() {
	sort.Slice(m.Entries, func(i, j int) bool {
		a, b := m.Entries[i], m.Entries[j]
		if a.TaskName != b.TaskName {
			return a.TaskName < b.TaskName
		}
		if a.ModeName != b.ModeName {
			return a.ModeName < b.ModeName
		}
		if a.ModelName != b.ModelName {
			return a.ModelName < b.ModelName
		}
		return a.Repetition < b.Repetition
	})
}

// WriteFile writes the manifest to disk atomically using a temporary file and
// rename, which is safe against concurrent writers.
func (m *Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".runs-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}
