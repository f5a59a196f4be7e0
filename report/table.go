package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arloliu/codecbench/compress"
	"github.com/arloliu/codecbench/discover"
	"github.com/arloliu/codecbench/format"
)

const failCell = "FAIL"

// WriteTable renders the report for humans: one row per file with sizes in
// binary units and ratios as percentages, an averages row, a per-codec
// summary and the mean ratio per file class.
func WriteTable(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	names := r.Names()

	cols := []string{"File", "Original"}
	for _, name := range names {
		cols = append(cols, string(name)+" size", string(name)+" ratio")
	}
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	for _, res := range r.Files {
		cells := []string{res.File.RelPath, format.Bytes(res.File.Size)}
		for _, name := range names {
			o, ok := res.Outcomes[name]
			switch {
			case !ok:
				cells = append(cells, "-", "-")
			case !o.OK():
				cells = append(cells, failCell, failCell)
			default:
				cells = append(cells, format.Bytes(o.Size), format.Percent(o.Ratio))
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	avg := []string{"Average", ""}
	for _, name := range names {
		if m, ok := r.Averages[name].Mean(); ok {
			avg = append(avg, "", format.Percent(m))
		} else {
			avg = append(avg, "", "n/a")
		}
	}
	fmt.Fprintln(tw, strings.Join(avg, "\t"))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Codec\tSamples\tMean\tWeighted\tOriginal\tCompressed\tFailures")
	for _, name := range names {
		s := r.Averages[name]
		mean, weighted := "n/a", "n/a"
		if m, ok := s.Mean(); ok {
			mean = format.Percent(m)
		}
		if v, ok := s.Weighted(); ok {
			weighted = format.Percent(v)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%d\n",
			name, s.Samples, mean, weighted,
			format.Bytes(s.TotalOriginal), format.Bytes(s.TotalCompressed), s.Failures)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := writeClassTable(w, r, names); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d files, %d failures, %d reused outputs\n", r.TotalFiles, r.Failures, r.Reused)

	return err
}

// writeClassTable prints one row per file class that has results, in
// discover.Classes order.
func writeClassTable(w io.Writer, r *Report, names []compress.Name) error {
	if len(r.ByClass) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cols := []string{"Class"}
	for _, name := range names {
		cols = append(cols, string(name))
	}
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	for _, class := range discover.Classes {
		stats, ok := r.ByClass[class]
		if !ok {
			continue
		}
		cells := []string{string(class)}
		for _, name := range names {
			if m, ok := stats[name].Mean(); ok {
				cells = append(cells, format.Percent(m))
			} else {
				cells = append(cells, "n/a")
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}
