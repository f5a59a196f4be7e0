package compress

import "github.com/arloliu/codecbench/internal/options"

// Legal tunable ranges.
const (
	MinDeflateLevel = 1
	MaxDeflateLevel = 9
	MinXZPreset     = 0
	MaxXZPreset     = 9
	MinZstdLevel    = 1
	MaxZstdLevel    = 22
	MinLZ4Level     = 1
	MaxLZ4Level     = 9
)

// Options bundles the per-codec tunables.
type Options struct {
	ZipLevel  int  // deflate level for zip, 1-9
	GzipLevel int  // gzip level, 1-9
	XZPreset  int  // xz preset, 0-9
	XZExtreme bool // xz extreme mode
	ZstdLevel int  // zstd level, 1-22
	LZ4Level  int  // lz4 level, 1-9
}

// DefaultOptions returns the maximum-compression defaults for every codec.
func DefaultOptions() Options {
	return Options{
		ZipLevel:  MaxDeflateLevel,
		GzipLevel: MaxDeflateLevel,
		XZPreset:  MaxXZPreset,
		XZExtreme: false,
		ZstdLevel: MaxZstdLevel,
		LZ4Level:  MaxLZ4Level,
	}
}

// Clamp returns a copy of o with every tunable forced into its legal range.
func (o Options) Clamp() Options {
	o.ZipLevel = options.Clamp(o.ZipLevel, MinDeflateLevel, MaxDeflateLevel)
	o.GzipLevel = options.Clamp(o.GzipLevel, MinDeflateLevel, MaxDeflateLevel)
	o.XZPreset = options.Clamp(o.XZPreset, MinXZPreset, MaxXZPreset)
	o.ZstdLevel = options.Clamp(o.ZstdLevel, MinZstdLevel, MaxZstdLevel)
	o.LZ4Level = options.Clamp(o.LZ4Level, MinLZ4Level, MaxLZ4Level)

	return o
}
