package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"

	"github.com/arloliu/codecbench/internal/fsx"
)

const (
	// JSONName and CSVName are the report file names under the output root.
	JSONName = "report.json"
	CSVName  = "report.csv"
)

type jsonOutcome struct {
	Size  *int64   `json:"size,omitempty"`
	Ratio *float64 `json:"ratio,omitempty"`
	Error string   `json:"error,omitempty"`
}

type jsonFile struct {
	File      string                 `json:"file"`
	Path      string                 `json:"path"`
	Class     string                 `json:"class"`
	OrigBytes int64                  `json:"orig_bytes"`
	Outcomes  map[string]jsonOutcome `json:"outcomes"`
}

type jsonCodec struct {
	Name        string `json:"name"`
	Extension   string `json:"extension,omitempty"`
	Backend     string `json:"backend,omitempty"`
	Options     string `json:"options,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

type jsonStats struct {
	Samples         int      `json:"samples"`
	AverageRatio    *float64 `json:"average_ratio"`
	WeightedRatio   *float64 `json:"weighted_ratio"`
	TotalOriginal   int64    `json:"total_original"`
	TotalCompressed int64    `json:"total_compressed"`
	Failures        int      `json:"failures"`
}

type jsonReport struct {
	Files           []jsonFile                      `json:"files"`
	Codecs          []jsonCodec                     `json:"codecs"`
	Averages        map[string]jsonStats            `json:"averages"`
	AveragesByClass map[string]map[string]jsonStats `json:"averages_by_class"`
	TotalFiles      int                             `json:"total_files"`
	Failures        int                             `json:"failures"`
}

func toJSONStats(s Stats) jsonStats {
	js := jsonStats{
		Samples:         s.Samples,
		TotalOriginal:   s.TotalOriginal,
		TotalCompressed: s.TotalCompressed,
		Failures:        s.Failures,
	}
	if m, ok := s.Mean(); ok {
		js.AverageRatio = &m
	}
	if w, ok := s.Weighted(); ok {
		js.WeightedRatio = &w
	}

	return js
}

func (r *Report) toJSON() jsonReport {
	out := jsonReport{
		Files:           make([]jsonFile, 0, len(r.Files)),
		Codecs:          make([]jsonCodec, 0, len(r.Codecs)),
		Averages:        make(map[string]jsonStats, len(r.Averages)),
		AveragesByClass: make(map[string]map[string]jsonStats, len(r.ByClass)),
		TotalFiles:      r.TotalFiles,
		Failures:        r.Failures,
	}

	for _, res := range r.Files {
		f := jsonFile{
			File:      path.Base(res.File.RelPath),
			Path:      res.File.RelPath,
			Class:     string(res.File.Class),
			OrigBytes: res.File.Size,
			Outcomes:  make(map[string]jsonOutcome, len(res.Outcomes)),
		}
		for name, o := range res.Outcomes {
			if !o.OK() {
				f.Outcomes[string(name)] = jsonOutcome{Error: o.Err}
				continue
			}
			size, ratio := o.Size, o.Ratio
			f.Outcomes[string(name)] = jsonOutcome{Size: &size, Ratio: &ratio}
		}
		out.Files = append(out.Files, f)
	}

	for _, d := range r.Codecs {
		out.Codecs = append(out.Codecs, jsonCodec{
			Name:        string(d.Name),
			Extension:   d.Extension,
			Backend:     d.Backend,
			Options:     d.Options,
			Fingerprint: d.Fingerprint,
		})
	}
	for name, s := range r.Averages {
		out.Averages[string(name)] = toJSONStats(s)
	}
	for class, m := range r.ByClass {
		stats := make(map[string]jsonStats, len(m))
		for name, s := range m {
			stats[string(name)] = toJSONStats(s)
		}
		out.AveragesByClass[string(class)] = stats
	}

	return out
}

// WriteJSON writes the full report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r.toJSON())
}

// WriteCSV writes one row per file: file, orig_bytes, then <codec>_size and
// <codec>_ratio for each codec. Failed cells are empty.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	names := r.Names()
	header := make([]string, 0, 2+2*len(names))
	header = append(header, "file", "orig_bytes")
	for _, name := range names {
		header = append(header, string(name)+"_size", string(name)+"_ratio")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, res := range r.Files {
		row = row[:0]
		row = append(row, res.File.RelPath, strconv.FormatInt(res.File.Size, 10))
		for _, name := range names {
			o, ok := res.Outcomes[name]
			if !ok || !o.OK() {
				row = append(row, "", "")
				continue
			}
			row = append(row, strconv.FormatInt(o.Size, 10), strconv.FormatFloat(o.Ratio, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// Write persists report.json and report.csv under outDir. Each file is
// replaced atomically.
func Write(r *Report, outDir string) error {
	if _, err := fsx.WriteAtomic(filepath.Join(outDir, JSONName), r.WriteJSON); err != nil {
		return fmt.Errorf("write %s: %w", JSONName, err)
	}
	if _, err := fsx.WriteAtomic(filepath.Join(outDir, CSVName), r.WriteCSV); err != nil {
		return fmt.Errorf("write %s: %w", CSVName, err)
	}

	return nil
}
