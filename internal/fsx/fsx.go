// Package fsx provides atomic file writes: content goes to a temp file in the
// destination directory, is synced, and is then renamed onto the final path.
// A failed or partial write never leaves a truncated file at the final path.
package fsx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// renameFunc is swapped in tests to simulate rename failures.
var renameFunc = os.Rename

// WriteAtomic creates the parent directory of path, streams fill into a temp
// file next to it and renames the temp file onto path once fill succeeded.
//
// It returns the size of the final file. On any error the temp file is
// removed and path is left untouched.
func WriteAtomic(path string, fill func(w io.Writer) error) (int64, error) {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	// leading dot keeps half-written files out of directory listings
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := fill(tmp); err != nil {
		return 0, err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		return 0, err
	}
	fi, err := tmp.Stat()
	if err != nil {
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}

	if err := renameFunc(tmpName, path); err != nil {
		return 0, err
	}
	_ = syncDirBestEffort(dir)

	return fi.Size(), nil
}

// MkdirTemp creates a private scratch directory next to path for tools that
// insist on creating their output file themselves. The caller removes it.
func MkdirTemp(path string) (string, error) {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	return os.MkdirTemp(dir, "."+name+".tmp-*")
}

// CommitFile renames a finished scratch file onto path and returns its size.
func CommitFile(tmpPath, path string) (int64, error) {
	fi, err := os.Stat(tmpPath)
	if err != nil {
		return 0, err
	}
	if !fi.Mode().IsRegular() {
		return 0, fmt.Errorf("%s is not a regular file", tmpPath)
	}
	if err := renameFunc(tmpPath, path); err != nil {
		return 0, err
	}
	_ = syncDirBestEffort(filepath.Dir(path))

	return fi.Size(), nil
}

// FileSize returns the size of an existing regular file at path.
// ok is false when path does not exist or is not a regular file.
func FileSize(path string) (size int64, ok bool) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return 0, false
	}

	return fi.Size(), true
}

func syncDirBestEffort(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
