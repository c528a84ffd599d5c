// Package storage owns the load/save lifecycle of the persisted JSON
// collections. Each collection lives in its own file so a failed write to
// one can never corrupt the other.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPersist wraps any failure to write a collection to disk. Callers keep
// their in-memory state authoritative and surface the error to the user.
var ErrPersist = errors.New("storage: persist failed")

// Load reads the JSON collection at path into v. Absent or unparsable data
// is treated as an empty collection: v is left untouched and ok is false.
// Load never fails hard.
func Load(path string, v any) (ok bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false
	}
	return true
}

// Save serializes v and writes it to path through a temp file and rename,
// so the previous contents survive a failed or interrupted write.
func Save(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// EnsureDir creates the data directory for a collection file.
func EnsureDir(dir string) error {
	return os.MkdirAll(filepath.Clean(dir), 0o755)
}
