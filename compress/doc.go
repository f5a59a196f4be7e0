// Package compress provides the codec registry used by the benchmark: a uniform
// file-to-file Compress contract over several compression algorithms, plus the
// availability probing that decides which codecs a run can use.
//
// # Overview
//
// Every codec implements [Codec]:
//
//	type Codec interface {
//	    Name() Name
//	    Extension() string
//	    Backend() string
//	    Options() string
//	    Probe() (string, error)
//	    Compress(ctx context.Context, src, dst string) (int64, error)
//	}
//
// Compress reads src and writes the compressed artifact to dst. The artifact is
// always produced in a temp location next to dst and renamed into place only
// after the codec finished successfully, so dst is either absent, the previous
// artifact, or a complete new artifact. It is never truncated.
//
// # Supported Codecs
//
//	Name | Ext  | Backend                                   | Tunable
//	-----|------|-------------------------------------------|-------------------------
//	zip  | .zip | klauspost/compress/zip + flate            | deflate level 1-9
//	gzip | .gz  | klauspost/compress/gzip                   | level 1-9
//	xz   | .xz  | ulikunitz/xz (LZMA2)                      | preset 0-9, extreme mode
//	zstd | .zst | klauspost/compress/zstd (gozstd with cgo) | level 1-22
//	7z   | .7z  | external 7z / 7zz / 7za executable        | fixed -mx9
//	lz4  | .lz4 | pierrec/lz4/v4 frame format               | level 1-9
//	s2   | .s2  | klauspost/compress/s2 stream format       | fixed (best)
//
// The first five make up [DefaultNames]; lz4 and s2 are opt-in.
//
// # Availability
//
// Native codecs are available whenever their backend is linked into the binary.
// External-tool codecs are available when their executable resolves on PATH or
// at one of a few well-known install locations. [Registry.Probe] evaluates
// availability exactly once and returns an immutable [Environment];
// [Registry.Select] turns the caller's requested names into the enabled codec
// list, dropping unavailable ones unless they were explicitly required.
//
// # Options
//
// Tunables are bundled in [Options]. Out-of-range values are clamped to the
// codec's legal range, never rejected:
//
//	opts := compress.DefaultOptions()
//	opts.GzipLevel = 6
//	opts.ZstdLevel = 19
//	reg, _ := compress.NewRegistry(compress.WithOptions(opts))
//
// A registry created without options runs every codec with its defaults.
//
// # Thread Safety
//
// Codecs hold no per-call state and may be used from several goroutines. The
// benchmark still runs codecs sequentially within a task so external processes
// and file handles stay predictable.
package compress
