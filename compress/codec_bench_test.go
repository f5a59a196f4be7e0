package compress

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeBenchSource(b *testing.B, path string, data []byte) {
	b.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		b.Fatal(err)
	}
}

// BenchmarkNativeCodecs_Compress measures every in-process codec on the same
// text sample and reports the achieved ratio alongside throughput.
func BenchmarkNativeCodecs_Compress(b *testing.B) {
	data := sampleText(256 * 1024)
	dir := b.TempDir()
	src := filepath.Join(dir, "sample.txt")
	writeBenchSource(b, src, data)

	for _, name := range []Name{ZIP, Gzip, XZ, Zstd, LZ4, S2} {
		b.Run(string(name), func(b *testing.B) {
			codec, err := CreateCodec(name, DefaultOptions())
			if err != nil {
				b.Fatal(err)
			}
			dst := filepath.Join(dir, string(name), "sample.txt"+codec.Extension())

			var size int64
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				size, err = codec.Compress(context.Background(), src, dst)
				if err != nil {
					b.Fatal(err)
				}
			}

			b.ReportMetric(float64(size)/float64(len(data)), "ratio")
		})
	}
}

// BenchmarkZstdCodec_Levels compares a fast, the default and the maximum zstd level.
func BenchmarkZstdCodec_Levels(b *testing.B) {
	data := sampleText(256 * 1024)
	dir := b.TempDir()
	src := filepath.Join(dir, "sample.txt")
	writeBenchSource(b, src, data)

	for _, level := range []int{1, 3, 19, MaxZstdLevel} {
		codec := NewZstdCodec(level)
		b.Run(codec.Options(), func(b *testing.B) {
			dst := filepath.Join(dir, "zstd", codec.Options()+".zst")
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				if _, err := codec.Compress(context.Background(), src, dst); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
