// Package jsonfile persists the user and message collections as whole JSON
// documents on local disk. Every mutation rewrites the full document; the
// in-memory collection is the source of truth for the process lifetime.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// loadCollection reads a whole JSON document. A missing, empty or
// undecodable file yields the empty collection, and a fresh empty document
// is written so later rewrites start from a known state.
func loadCollection[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err == nil && len(raw) > 0 {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			if items == nil {
				items = []T{}
			}
			return items, nil
		}
	}

	items := []T{}
	if err := writeCollection(path, items); err != nil {
		return nil, err
	}

	return items, nil
}

// writeCollection replaces the document on disk. The write goes to a temp
// file in the same directory and is renamed into place, so a crash never
// leaves a record half-written.
func writeCollection[T any](path string, items []T) error {
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", path, err)
	}

	_, werr := tmp.Write(raw)
	cerr := tmp.Close()

	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		if werr != nil {
			return fmt.Errorf("write %s: %w", path, werr)
		}
		return fmt.Errorf("write %s: %w", path, cerr)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
