package compress

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/codecbench/internal/fsx"
)

// sevenZipDirs are searched when no 7-Zip executable is on PATH.
var sevenZipDirs = []string{
	"/usr/bin",
	"/usr/local/bin",
	"/opt/homebrew/bin",
	"/usr/lib/p7zip",
	`C:\Program Files\7-Zip`,
	`C:\Program Files (x86)\7-Zip`,
}

// SevenZipCodec compresses a file into a 7z archive with the external 7-Zip
// tool at its highest compression level.
type SevenZipCodec struct {
	locator ToolLocator
}

var _ Codec = (*SevenZipCodec)(nil)

// NewSevenZipCodec creates a 7z codec that searches for 7z, 7zz and 7za.
func NewSevenZipCodec() SevenZipCodec {
	return NewSevenZipCodecWithLocator(ToolLocator{
		Names: []string{"7z", "7zz", "7za"},
		Dirs:  sevenZipDirs,
	})
}

// NewSevenZipCodecWithLocator creates a 7z codec with a custom tool search.
func NewSevenZipCodecWithLocator(l ToolLocator) SevenZipCodec {
	return SevenZipCodec{locator: l}
}

func (c SevenZipCodec) Name() Name        { return SevenZip }
func (c SevenZipCodec) Extension() string { return ".7z" }
func (c SevenZipCodec) Backend() string   { return "7-zip" }
func (c SevenZipCodec) Options() string   { return "mx=9" }

// Probe resolves the 7-Zip executable.
func (c SevenZipCodec) Probe() (string, error) {
	return c.locator.Locate()
}

// Compress runs 7-Zip into a scratch directory next to dst and moves the
// finished archive onto dst.
func (c SevenZipCodec) Compress(ctx context.Context, src, dst string) (int64, error) {
	tool, err := c.locator.Locate()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", SevenZip, err)
	}
	if _, err := os.Stat(src); err != nil {
		return 0, fmt.Errorf("%s: open source: %w", SevenZip, err)
	}

	scratch, err := fsx.MkdirTemp(dst)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", SevenZip, err)
	}
	defer os.RemoveAll(scratch)

	tmp := filepath.Join(scratch, "archive.7z")
	// -bd: no progress indicator, -y: assume yes, -spd: no wildcard matching
	// in file names, --: stop switch parsing
	if err := runTool(ctx, tool, "a", "-t7z", "-mx9", "-bd", "-y", "-spd", "--", tmp, src); err != nil {
		return 0, fmt.Errorf("%s: %w", SevenZip, err)
	}

	n, err := fsx.CommitFile(tmp, dst)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", SevenZip, err)
	}

	return n, nil
}
