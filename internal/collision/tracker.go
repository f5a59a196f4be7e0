// Package collision detects output paths that only differ by letter case.
// On case-insensitive filesystems such paths name the same file, so two
// inputs would silently share one artifact.
package collision

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrPathCollision is returned when two different paths fold to the same key.
var ErrPathCollision = errors.New("output path collision")

// Tracker remembers every tracked path by its case-folded form.
type Tracker struct {
	paths map[string]string // folded path → first path seen
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{paths: make(map[string]string)}
}

// Track records path. It returns ErrPathCollision when a different path
// with the same folded form was tracked before. Rejected paths are not
// recorded; tracking the same path twice is not a collision.
func (t *Tracker) Track(path string) error {
	key := strings.ToLower(path)
	if existing, exists := t.paths[key]; exists && existing != path {
		return fmt.Errorf("%w: %q and %q", ErrPathCollision, existing, path)
	}
	t.paths[key] = path

	return nil
}

// FoldsCase reports whether the filesystem holding dir resolves names that
// differ only by letter case to the same file. dir is created if missing.
func FoldsCase(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	f, err := os.CreateTemp(dir, ".casefold-*.tmp")
	if err != nil {
		return false, err
	}
	name := f.Name()
	defer os.Remove(name)
	if err := f.Close(); err != nil {
		return false, err
	}

	_, err = os.Stat(filepath.Join(dir, swapCase(filepath.Base(name))))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}

		return unicode.ToUpper(r)
	}, s)
}
