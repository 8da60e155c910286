// Package snapshot persists the publication list as a JSON array and reads it
// back at render time.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mlab-site/labpubs/internal/publication"
)

// DefaultPath is the project-relative location read by the site templates.
const DefaultPath = "src/data/publications.json"

// Encode renders pubs as the snapshot document: a JSON array with 2-space
// indentation and a trailing newline. A nil slice encodes as [].
func Encode(pubs []publication.Publication) ([]byte, error) {
	if pubs == nil {
		pubs = []publication.Publication{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pubs); err != nil {
		return nil, fmt.Errorf("encoding publications: %w", err)
	}
	return buf.Bytes(), nil
}

// Write replaces the snapshot at path with pubs. The document is written to a
// temporary file in the same directory and renamed into place, so readers see
// either the previous snapshot or the new one.
func Write(path string, pubs []publication.Publication) error {
	data, err := Encode(pubs)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp snapshot: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("setting snapshot permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	committed = true
	return nil
}

// Load reads the snapshot at path. A missing file is not an error: it yields
// an empty, non-nil slice so callers can render a "no data" state.
func Load(path string) ([]publication.Publication, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []publication.Publication{}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []publication.Publication{}, nil
	}

	var pubs []publication.Publication
	if err := json.Unmarshal(data, &pubs); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if pubs == nil {
		pubs = []publication.Publication{}
	}
	return pubs, nil
}

// Reader is an idempotent, read-only accessor bound to one snapshot path.
type Reader struct {
	path string
}

// NewReader creates a Reader for path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Path returns the snapshot path.
func (r *Reader) Path() string {
	return r.path
}

// Load reads the snapshot. See Load.
func (r *Reader) Load() ([]publication.Publication, error) {
	return Load(r.path)
}

// Info describes a snapshot on disk.
type Info struct {
	Path   string
	Exists bool
	Size   int64
}

// Stat reports whether a snapshot exists and its size.
func Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{Path: path}, nil
		}
		return Info{}, fmt.Errorf("checking snapshot: %w", err)
	}
	return Info{Path: path, Exists: true, Size: fi.Size()}, nil
}
