// Package store persists component catalogs as flat JSON record lists
// so a comparison can be re-run without re-scanning.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/skillscan/skillscan/internal/catalog"
)

// Record is the durable form of one catalog entry. Frontmatter is a
// scan-time intermediate and is deliberately not persisted.
type Record struct {
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	Repo           string   `json:"repo"`
	Path           string   `json:"path"`
	Description    string   `json:"description"`
	Keywords       []string `json:"keywords"`
	LineCount      int      `json:"line_count"`
	HasReferences  bool     `json:"has_references"`
	ReferenceFiles []string `json:"reference_files"`
}

// Save writes components to path as an indented JSON array, creating
// parent directories as needed.
func Save(path string, components []catalog.Component) error {
	records := make([]Record, 0, len(components))
	for _, c := range components {
		records = append(records, Record{
			Kind:           string(c.Kind),
			Name:           c.Name,
			Repo:           c.Repo,
			Path:           c.Path,
			Description:    c.Description,
			Keywords:       c.Keywords,
			LineCount:      c.LineCount,
			HasReferences:  c.HasReferences,
			ReferenceFiles: c.ReferenceFiles,
		})
	}

	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create cache dir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("cannot write catalog %s: %w", path, err)
	}
	return nil
}

// Load reads a catalog written by Save. Optional fields missing from a
// record default to their zero values, so catalogs written by older or
// newer versions still load; only kind, name, repo and path are
// structurally required.
func Load(path string) ([]catalog.Component, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog %s: %w", path, err)
	}
	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("invalid catalog JSON %s: %w", path, err)
	}

	out := make([]catalog.Component, 0, len(records))
	for i, r := range records {
		if r.Kind == "" || r.Name == "" || r.Repo == "" || r.Path == "" {
			return nil, fmt.Errorf("catalog %s: record %d is missing a required field", path, i)
		}
		out = append(out, catalog.Component{
			Kind:           catalog.Kind(r.Kind),
			Name:           r.Name,
			Repo:           r.Repo,
			Path:           r.Path,
			Description:    r.Description,
			Keywords:       r.Keywords,
			LineCount:      r.LineCount,
			HasReferences:  r.HasReferences,
			ReferenceFiles: r.ReferenceFiles,
		})
	}
	return out, nil
}

// AcquireLock takes an exclusive lock on cacheDir so two scan runs
// cannot clobber each other's catalog files. It returns a release
// function; the caller must invoke it when done.
func AcquireLock(cacheDir string, timeout time.Duration) (func(), error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache dir %s: %w", cacheDir, err)
	}
	lockPath := filepath.Join(cacheDir, "cache.lock")
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire cache lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another scan is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
