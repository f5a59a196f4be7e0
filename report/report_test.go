package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/arloliu/codecbench/bench"
	"github.com/arloliu/codecbench/compress"
	"github.com/arloliu/codecbench/discover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okOutcome(size, orig int64) bench.Outcome {
	return bench.Outcome{Size: size, Ratio: float64(size) / float64(orig)}
}

func result(rel string, size int64, class discover.Class, outcomes map[compress.Name]bench.Outcome) bench.FileResult {
	return bench.FileResult{
		File:     discover.FileEntry{RelPath: rel, AbsPath: "/in/" + rel, Size: size, Class: class},
		Outcomes: outcomes,
	}
}

func sampleResults() []bench.FileResult {
	return []bench.FileResult{
		result("b.txt", 1000, discover.ClassCompressible, map[compress.Name]bench.Outcome{
			compress.Gzip: okOutcome(300, 1000),
			compress.ZIP:  okOutcome(310, 1000),
		}),
		result("a/photo.png", 3000, discover.ClassPrecompressed, map[compress.Name]bench.Outcome{
			compress.Gzip: okOutcome(2990, 3000),
			compress.ZIP:  {Err: "zip: disk full"},
		}),
		result("c.bin", 7, discover.ClassOther, map[compress.Name]bench.Outcome{
			compress.Gzip: okOutcome(27, 7),
		}),
	}
}

func descriptors() []compress.Descriptor {
	return []compress.Descriptor{
		{Name: compress.ZIP, Extension: ".zip", Backend: "klauspost/compress", Options: "level=9", Fingerprint: "00000000000000aa"},
		{Name: compress.Gzip, Extension: ".gz", Backend: "klauspost/compress", Options: "level=9", Fingerprint: "00000000000000bb"},
	}
}

func TestAggregate_Stats(t *testing.T) {
	r := Aggregate(sampleResults(), descriptors())

	assert.Equal(t, 3, r.TotalFiles)
	assert.Equal(t, 1, r.Failures)
	assert.Equal(t, []compress.Name{compress.Gzip, compress.ZIP}, r.Names())
	assert.Equal(t, []string{"a/photo.png", "b.txt", "c.bin"}, []string{
		r.Files[0].File.RelPath, r.Files[1].File.RelPath, r.Files[2].File.RelPath,
	})

	gz := r.Averages[compress.Gzip]
	assert.Equal(t, 3, gz.Samples)
	assert.Equal(t, 0, gz.Failures)
	mean, okMean := gz.Mean()
	require.True(t, okMean)
	assert.InDelta(t, (0.3+2990.0/3000+27.0/7)/3, mean, 1e-12)
	weighted, okW := gz.Weighted()
	require.True(t, okW)
	assert.InDelta(t, 3317.0/4007, weighted, 1e-12)

	zip := r.Averages[compress.ZIP]
	assert.Equal(t, 1, zip.Samples)
	assert.Equal(t, 1, zip.Failures)
	assert.Equal(t, int64(1000), zip.TotalOriginal, "failed files are excluded from totals")

	pre := r.ByClass[discover.ClassPrecompressed]
	assert.Equal(t, 1, pre[compress.Gzip].Samples)
	assert.Equal(t, 0, pre[compress.ZIP].Samples)
	_, okZip := pre[compress.ZIP].Mean()
	assert.False(t, okZip)
}

func TestAggregate_NoSamples(t *testing.T) {
	results := []bench.FileResult{
		result("a.txt", 10, discover.ClassCompressible, map[compress.Name]bench.Outcome{
			compress.XZ: {Err: "xz: boom"},
		}),
	}
	r := Aggregate(results, nil)

	_, ok := r.Averages[compress.XZ].Mean()
	assert.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	xz := decoded["averages"].(map[string]any)["xz"].(map[string]any)
	assert.Nil(t, xz["average_ratio"])
	assert.Equal(t, float64(0), xz["samples"])
}

func TestAggregate_DescriptorWithoutResults(t *testing.T) {
	r := Aggregate(nil, descriptors())
	assert.Len(t, r.Codecs, 2)
	assert.Equal(t, 0, r.Averages[compress.ZIP].Samples)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	var results []bench.FileResult
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		orig := int64(1 + rng.Intn(100000))
		size := int64(rng.Intn(int(orig) * 2))
		results = append(results, result(
			filepath.ToSlash(filepath.Join("d", string(rune('a'+i%26)), strings.Repeat("x", i%7+1)+".txt")),
			orig, discover.ClassCompressible,
			map[compress.Name]bench.Outcome{compress.Zstd: okOutcome(size, orig)},
		))
	}
	want := Aggregate(results, nil)

	for i := 0; i < 10; i++ {
		shuffled := append([]bench.FileResult(nil), results...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Aggregate(shuffled, nil)
		assert.Equal(t, want.Averages, got.Averages)
		assert.Equal(t, want.ByClass, got.ByClass)
	}
}

func TestWriteCSV(t *testing.T) {
	r := Aggregate(sampleResults(), descriptors())

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"file", "orig_bytes", "gzip_size", "gzip_ratio", "zip_size", "zip_ratio"}, rows[0])
	assert.Equal(t, []string{"a/photo.png", "3000", "2990", "0.996667", "", ""}, rows[1])
	assert.Equal(t, []string{"b.txt", "1000", "300", "0.300000", "310", "0.310000"}, rows[2])
	assert.Equal(t, []string{"c.bin", "7", "27", "3.857143", "", ""}, rows[3])
	assert.NotContains(t, buf.String(), "FAIL")
}

func TestWriteJSON_Shape(t *testing.T) {
	r := Aggregate(sampleResults(), descriptors())

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded struct {
		Files []struct {
			File      string                     `json:"file"`
			Path      string                     `json:"path"`
			Class     string                     `json:"class"`
			OrigBytes int64                      `json:"orig_bytes"`
			Outcomes  map[string]json.RawMessage `json:"outcomes"`
		} `json:"files"`
		Codecs []struct {
			Name        string `json:"name"`
			Fingerprint string `json:"fingerprint"`
		} `json:"codecs"`
		TotalFiles int `json:"total_files"`
		Failures   int `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Files, 3)
	photo := decoded.Files[0]
	assert.Equal(t, "photo.png", photo.File)
	assert.Equal(t, "a/photo.png", photo.Path)
	assert.Equal(t, "precompressed", photo.Class)
	assert.JSONEq(t, `{"error":"zip: disk full"}`, string(photo.Outcomes["zip"]))
	assert.JSONEq(t, `{"size":2990,"ratio":0.9966666666666667}`, string(photo.Outcomes["gzip"]))

	require.Len(t, decoded.Codecs, 2)
	assert.Equal(t, "gzip", decoded.Codecs[0].Name)
	assert.Equal(t, "00000000000000bb", decoded.Codecs[0].Fingerprint)
	assert.Equal(t, 3, decoded.TotalFiles)
	assert.Equal(t, 1, decoded.Failures)

	assert.NotContains(t, buf.String(), "/in/", "absolute paths are not persisted")
}

func TestWriteJSON_IgnoresRunOnlyFields(t *testing.T) {
	a := sampleResults()
	b := sampleResults()
	for _, res := range b {
		for name, o := range res.Outcomes {
			o.Reused = true
			o.Elapsed = 12345
			res.Outcomes[name] = o
		}
	}

	var ja, jb bytes.Buffer
	require.NoError(t, Aggregate(a, descriptors()).WriteJSON(&ja))
	require.NoError(t, Aggregate(b, descriptors()).WriteJSON(&jb))
	assert.Equal(t, ja.String(), jb.String())
}

func TestWrite_Files(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	r := Aggregate(sampleResults(), descriptors())
	require.NoError(t, Write(r, out))

	for _, name := range []string{JSONName, CSVName} {
		fi, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err)
		assert.Positive(t, fi.Size())
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files are left behind")
}

func TestWriteTable(t *testing.T) {
	r := Aggregate(sampleResults(), descriptors())
	r.Reused = 2

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "gzip size")
	assert.Contains(t, out, "zip ratio")
	assert.Contains(t, out, "2.9 KB")
	assert.Contains(t, out, "30.0%")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "Average")
	assert.Contains(t, out, "3 files, 1 failures, 2 reused outputs")
}

func TestWriteTable_ClassRowsFollowClassOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, Aggregate(sampleResults(), descriptors())))

	var rows [][]string
	for _, line := range strings.Split(buf.String(), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && slices.Contains(discover.Classes, discover.Class(fields[0])) {
			rows = append(rows, fields)
		}
	}
	assert.Equal(t, [][]string{
		{"compressible", "30.0%", "31.0%"},
		{"precompressed", "99.7%", "n/a"},
		{"other", "385.7%", "n/a"},
	}, rows)
}
