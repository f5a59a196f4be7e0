// Package report turns benchmark results into aggregate statistics and
// renders them as JSON, CSV and a console table.
package report

import (
	"slices"
	"sort"

	"github.com/arloliu/codecbench/bench"
	"github.com/arloliu/codecbench/compress"
	"github.com/arloliu/codecbench/discover"
)

// Stats accumulates the successful ratios of one codec.
type Stats struct {
	Samples         int
	Failures        int
	SumRatio        float64
	TotalOriginal   int64
	TotalCompressed int64
}

// Mean returns the average ratio over successful files. ok is false when
// the codec has no samples.
func (s Stats) Mean() (mean float64, ok bool) {
	if s.Samples == 0 {
		return 0, false
	}

	return s.SumRatio / float64(s.Samples), true
}

// Weighted returns total compressed bytes over total original bytes of the
// successful files. ok is false when the codec has no samples.
func (s Stats) Weighted() (ratio float64, ok bool) {
	if s.Samples == 0 || s.TotalOriginal == 0 {
		return 0, false
	}

	return float64(s.TotalCompressed) / float64(s.TotalOriginal), true
}

// Report is the terminal artifact of a run.
type Report struct {
	// Files is sorted by relative path.
	Files []bench.FileResult
	// Codecs lists the codec columns in stable (name) order.
	Codecs []compress.Descriptor

	Averages map[compress.Name]Stats
	ByClass  map[discover.Class]map[compress.Name]Stats

	TotalFiles int
	Failures   int
	// Reused counts outputs taken from a previous run. It is not persisted.
	Reused int
}

// Names returns the codec column names in order.
func (r *Report) Names() []compress.Name {
	out := make([]compress.Name, len(r.Codecs))
	for i, d := range r.Codecs {
		out[i] = d.Name
	}

	return out
}

// accumulator collects ratios and sums them in sorted order on finish, so
// the result does not depend on the order results arrived in.
type accumulator struct {
	ratios          []float64
	failures        int
	totalOriginal   int64
	totalCompressed int64
}

func (a *accumulator) add(orig int64, o bench.Outcome) {
	if !o.OK() {
		a.failures++
		return
	}
	a.ratios = append(a.ratios, o.Ratio)
	a.totalOriginal += orig
	a.totalCompressed += o.Size
}

func (a *accumulator) stats() Stats {
	ratios := slices.Clone(a.ratios)
	sort.Float64s(ratios)

	s := Stats{
		Samples:         len(ratios),
		Failures:        a.failures,
		TotalOriginal:   a.totalOriginal,
		TotalCompressed: a.totalCompressed,
	}
	for _, r := range ratios {
		s.SumRatio += r
	}

	return s
}

// Aggregate builds a Report from results. descriptors supplies codec
// metadata; a codec that only appears in results still gets a column.
// A codec absent from a FileResult contributes nothing to its statistics.
func Aggregate(results []bench.FileResult, descriptors []compress.Descriptor) *Report {
	known := make(map[compress.Name]compress.Descriptor, len(descriptors))
	for _, d := range descriptors {
		known[d.Name] = d
	}

	byCodec := make(map[compress.Name]*accumulator)
	byClass := make(map[discover.Class]map[compress.Name]*accumulator)

	r := &Report{
		Files:      slices.Clone(results),
		TotalFiles: len(results),
	}

	for _, res := range results {
		class := res.File.Class
		if class == "" {
			class = discover.ClassOther
		}
		if byClass[class] == nil {
			byClass[class] = make(map[compress.Name]*accumulator)
		}

		for name, o := range res.Outcomes {
			if _, ok := known[name]; !ok {
				known[name] = compress.Descriptor{Name: name}
			}
			if byCodec[name] == nil {
				byCodec[name] = &accumulator{}
			}
			if byClass[class][name] == nil {
				byClass[class][name] = &accumulator{}
			}
			byCodec[name].add(res.File.Size, o)
			byClass[class][name].add(res.File.Size, o)

			if !o.OK() {
				r.Failures++
			} else if o.Reused {
				r.Reused++
			}
		}
	}

	sort.Slice(r.Files, func(i, j int) bool {
		return r.Files[i].File.RelPath < r.Files[j].File.RelPath
	})

	for _, d := range known {
		r.Codecs = append(r.Codecs, d)
	}
	sort.Slice(r.Codecs, func(i, j int) bool { return r.Codecs[i].Name < r.Codecs[j].Name })

	r.Averages = make(map[compress.Name]Stats, len(r.Codecs))
	for _, d := range r.Codecs {
		acc := byCodec[d.Name]
		if acc == nil {
			acc = &accumulator{}
		}
		r.Averages[d.Name] = acc.stats()
	}

	r.ByClass = make(map[discover.Class]map[compress.Name]Stats, len(byClass))
	for class, m := range byClass {
		stats := make(map[compress.Name]Stats, len(m))
		for name, acc := range m {
			stats[name] = acc.stats()
		}
		r.ByClass[class] = stats
	}

	return r
}
