// Package discover walks an input tree and produces the ordered list of files
// a benchmark run compresses.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotDirectory is returned when the input root is missing or not a directory.
	ErrNotDirectory = errors.New("input is not a directory")
	// ErrOutputOverlapsInput is returned when the output root equals or contains the input root.
	ErrOutputOverlapsInput = errors.New("output directory must not contain the input directory")
)

// FileEntry is one discovered file. Size is always greater than zero.
type FileEntry struct {
	RelPath string // slash-separated path relative to the input root
	AbsPath string
	Size    int64
	Class   Class
}

// Options controls filtering during discovery.
type Options struct {
	// OutputRoot is pruned from the walk. Empty disables pruning.
	OutputRoot string
	// Extensions is the allow-list, compared case-insensitively. Empty keeps every file.
	Extensions []string
	// MaxFiles truncates the result to the first N files in walk order. 0 means unlimited.
	MaxFiles int
	// OnSkip, when set, is called for every entry dropped because it could
	// not be read. Unreadable directories are skipped as a whole.
	OnSkip func(path string, err error)
}

// walkDir is swapped in tests to inject read errors.
var walkDir = filepath.WalkDir

// Discover walks inputRoot in lexical order and returns every regular,
// non-empty file that passes the filters in opts.
//
// A symlinked inputRoot is resolved first; RelPath and AbsPath are relative
// to and below the resolved directory. Entries that cannot be read are
// reported through opts.OnSkip and left out; only a failure on the root
// itself is returned.
func Discover(inputRoot string, opts Options) ([]FileEntry, error) {
	root, err := filepath.Abs(inputRoot)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDirectory, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, inputRoot)
	}
	if root, err = filepath.EvalSymlinks(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDirectory, err)
	}

	outRoot := ""
	if opts.OutputRoot != "" {
		if outRoot, err = resolve(opts.OutputRoot); err != nil {
			return nil, err
		}
		if within(root, outRoot) {
			return nil, fmt.Errorf("%w: %s", ErrOutputOverlapsInput, opts.OutputRoot)
		}
	}

	allowed := NormalizeExtensions(opts.Extensions)

	var files []FileEntry
	errStop := errors.New("stop")
	skip := func(path string, err error) {
		if opts.OnSkip != nil {
			opts.OnSkip(path, err)
		}
	}
	err = walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			skip(path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}
		if d.IsDir() {
			if outRoot != "" && within(path, outRoot) {
				return filepath.SkipDir
			}
			return nil
		}
		// symlinks, sockets and devices are never benchmarked
		if !d.Type().IsRegular() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if len(allowed) > 0 && !allowed[ext] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			skip(path, err)
			return nil
		}
		if info.Size() == 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, FileEntry{
			RelPath: filepath.ToSlash(rel),
			AbsPath: path,
			Size:    info.Size(),
			Class:   Classify(path),
		})
		if opts.MaxFiles > 0 && len(files) >= opts.MaxFiles {
			return errStop
		}

		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}

	return files, nil
}

// NormalizeExtensions lowercases exts, adds a missing leading dot and drops
// empty entries.
func NormalizeExtensions(exts []string) map[string]bool {
	if len(exts) == 0 {
		return nil
	}
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}

	return m
}

// resolve returns the absolute form of path with symlinks evaluated. A path
// that does not exist yet is returned in absolute form only.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return abs, nil
		}

		return "", err
	}

	return resolved, nil
}

// within reports whether path equals root or is nested under it. Both must
// be clean absolute paths.
func within(path, root string) bool {
	if path == root {
		return true
	}
	sep := string(filepath.Separator)
	if strings.HasSuffix(root, sep) {
		return strings.HasPrefix(path, root)
	}

	return strings.HasPrefix(path, root+sep)
}
