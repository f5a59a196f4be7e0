package discover

import (
	"path/filepath"
	"strings"
)

// Class groups files by how well they are expected to compress.
type Class string

const (
	ClassCompressible  Class = "compressible"
	ClassPrecompressed Class = "precompressed"
	ClassOther         Class = "other"
)

// Classes lists every class in report order.
var Classes = []Class{ClassCompressible, ClassPrecompressed, ClassOther}

var compressibleExt = map[string]bool{
	".tif": true, ".tiff": true, ".vrt": true, ".dem": true, ".asc": true,
	".csv": true, ".txt": true, ".json": true, ".xml": true, ".ini": true,
	".cfg": true, ".log": true,
	".js": true, ".ts": true, ".py": true, ".ps1": true, ".bat": true, ".sh": true, ".md": true,
	".yaml": true, ".yml": true,
	".psd": true, ".psb": true,
}

var precompressedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true, ".bmp": true,
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true,
	".mp3": true, ".aac": true, ".ogg": true, ".wav": true, ".flac": true,
	".zip": true, ".7z": true, ".rar": true, ".gz": true, ".xz": true, ".zst": true, ".tgz": true,
	".sqlite": true, ".db": true,
}

// Classify returns the class of path based on its extension.
func Classify(path string) Class {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case compressibleExt[ext]:
		return ClassCompressible
	case precompressedExt[ext]:
		return ClassPrecompressed
	default:
		return ClassOther
	}
}
