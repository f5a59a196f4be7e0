package compress

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Name identifies a codec, e.g. "gzip".
type Name string

const (
	ZIP      Name = "zip"  // ZIP is a deflate-based zip archive holding a single entry.
	Gzip     Name = "gzip" // Gzip is a gzip stream.
	XZ       Name = "xz"   // XZ is an LZMA2 xz container.
	Zstd     Name = "zstd" // Zstd is a Zstandard frame.
	SevenZip Name = "7z"   // SevenZip is a 7z archive produced by the external 7-Zip tool.
	LZ4      Name = "lz4"  // LZ4 is an LZ4 frame.
	S2       Name = "s2"   // S2 is an S2 stream.
)

// DefaultNames lists the codecs requested when the caller selects none.
var DefaultNames = []Name{ZIP, Gzip, XZ, Zstd, SevenZip}

// AllNames lists every built-in codec in registration order.
var AllNames = []Name{ZIP, Gzip, XZ, Zstd, SevenZip, LZ4, S2}

var (
	// ErrUnknownCodec is returned for codec names that are not registered.
	ErrUnknownCodec = errors.New("unknown codec")
	// ErrRequiredUnavailable is returned by Select when a required codec is unavailable.
	ErrRequiredUnavailable = errors.New("required codec unavailable")
	// ErrToolNotFound is returned when an external tool cannot be resolved.
	ErrToolNotFound = errors.New("executable not found")
)

// Backend labels for codecs implemented in-process.
const builtinLocation = "builtin"

// Compressor compresses one file into another.
type Compressor interface {
	// Compress reads src and writes the compressed artifact to dst, returning
	// the artifact size in bytes.
	//
	// dst is replaced atomically: on error dst is left as it was before the
	// call. The error carries the backend's own diagnostic (library error or
	// external tool output).
	Compress(ctx context.Context, src, dst string) (int64, error)
}

// Codec is a named, probeable Compressor.
type Codec interface {
	Compressor

	// Name returns the codec name used on the command line and in reports.
	Name() Name

	// Extension returns the artifact file extension including the dot.
	Extension() string

	// Backend returns a short label of the implementation, e.g. "klauspost".
	Backend() string

	// Options returns the canonical, deterministic rendering of the codec's
	// effective tunables, e.g. "level=9".
	Options() string

	// Probe reports where the codec's implementation lives ("builtin" or an
	// executable path) or why it is unavailable.
	Probe() (string, error)
}

// ParseNames converts raw codec names into Names.
//
// Names are trimmed and lowercased, empty entries are skipped and duplicates
// keep their first position. Aliases "gz", "zst" and "7zip" are accepted.
// Unknown names yield ErrUnknownCodec.
func ParseNames(raw []string) ([]Name, error) {
	names := make([]Name, 0, len(raw))
	for _, r := range raw {
		s := strings.ToLower(strings.TrimSpace(r))
		if s == "" {
			continue
		}
		name := canonicalName(s)
		if !slices.Contains(AllNames, name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, r)
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names, nil
}

func canonicalName(s string) Name {
	switch s {
	case "gz":
		return Gzip
	case "zst", "zstandard":
		return Zstd
	case "7zip", "sevenzip":
		return SevenZip
	default:
		return Name(s)
	}
}

// CreateCodec creates a built-in codec by name using the given options.
func CreateCodec(name Name, opts Options) (Codec, error) {
	opts = opts.Clamp()

	switch name {
	case ZIP:
		return NewZipCodec(opts.ZipLevel), nil
	case Gzip:
		return NewGzipCodec(opts.GzipLevel), nil
	case XZ:
		return NewXZCodec(opts.XZPreset, opts.XZExtreme), nil
	case Zstd:
		return NewZstdCodec(opts.ZstdLevel), nil
	case SevenZip:
		return NewSevenZipCodec(), nil
	case LZ4:
		return NewLZ4Codec(opts.LZ4Level), nil
	case S2:
		return NewS2Codec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, string(name))
	}
}
