// pkg/store/store.go
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// The dashboard persists each collection as a flat JSON document shaped
// { "<collection>": [...records], "lastUpdated": "<ISO instant>" }.
// The dashboard API performs no validation of its own, so this package
// is the only guard on that shape.

// Load reads the records of one collection. A missing file is an empty
// collection, not an error: first runs start from nothing.
func Load[T any](path, collection string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed store document %s: %w", path, err)
	}

	raw, ok := doc[collection]
	if !ok {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("malformed %q collection in %s: %w", collection, path, err)
	}
	return records, nil
}

// Save rewrites the whole document atomically: the payload is written
// to a temp file in the same directory and renamed into place, so a
// crash mid-write leaves the previous document intact.
func Save[T any](path, collection string, records []T, now time.Time) error {
	if records == nil {
		records = []T{}
	}

	doc := map[string]any{
		collection:    records,
		"lastUpdated": now.UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %q collection: %w", collection, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Merge returns the append-only deduplicated union of existing and
// incoming records plus the count actually added. Existing records are
// never modified or removed; an incoming record whose key collides with
// either the existing set or an earlier incoming record is silently
// excluded, never merged field-by-field.
func Merge[T any](existing, incoming []T, key func(T) string) ([]T, int) {
	seen := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		seen[key(rec)] = struct{}{}
	}

	merged := existing
	added := 0
	for _, rec := range incoming {
		k := key(rec)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, rec)
		added++
	}
	return merged, added
}
