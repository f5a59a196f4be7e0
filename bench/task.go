package bench

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arloliu/codecbench/compress"
	"github.com/arloliu/codecbench/discover"
	"github.com/arloliu/codecbench/internal/fsx"
)

// DefaultTimeout bounds a single codec invocation.
const DefaultTimeout = 5 * time.Minute

// Policy holds the read-only settings shared by every task of a run.
type Policy struct {
	OutDir  string
	Force   bool          // recompress even when the output already exists
	Timeout time.Duration // per codec call, <= 0 disables the bound
	// FoldCase is set when OutDir treats names differing only by case as
	// one file. Only then are such input paths kept apart.
	FoldCase bool
}

// Task is the unit of scheduling: one file and the codecs to run on it.
type Task struct {
	File   discover.FileEntry
	Codecs []compress.Codec
	Policy Policy
	// Blocked, when set, fails every codec of the task without running it.
	Blocked error
}

// Outcome is the result of one codec on one file. Exactly one of Size/Ratio
// or Err is meaningful, as reported by OK.
type Outcome struct {
	Size  int64
	Ratio float64
	Err   string

	// Reused and Elapsed describe this run only and are never persisted.
	Reused  bool
	Elapsed time.Duration
}

// OK reports whether the codec succeeded.
func (o Outcome) OK() bool { return o.Err == "" }

// FileResult holds the outcome of every codec for one file.
type FileResult struct {
	File     discover.FileEntry
	Outcomes map[compress.Name]Outcome
}

// Failures returns the number of failed codecs.
func (r FileResult) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}

	return n
}

// OutputPath returns where codec c stores its artifact for the file at relPath.
func OutputPath(outDir string, c compress.Codec, relPath string) string {
	return filepath.Join(outDir, string(c.Name()), filepath.FromSlash(relPath)+c.Extension())
}

// Execute runs every codec of t against its file. A failing codec never
// prevents the remaining ones from running.
func Execute(ctx context.Context, t Task) FileResult {
	res := FileResult{
		File:     t.File,
		Outcomes: make(map[compress.Name]Outcome, len(t.Codecs)),
	}
	for _, c := range t.Codecs {
		if t.Blocked != nil {
			res.Outcomes[c.Name()] = failed(t.Blocked)
			continue
		}
		res.Outcomes[c.Name()] = runCodec(ctx, c, t.File, t.Policy)
	}

	return res
}

func runCodec(ctx context.Context, c compress.Codec, f discover.FileEntry, p Policy) (o Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o = failed(fmt.Errorf("%s: panic: %v", c.Name(), r))
		}
		o.Elapsed = time.Since(start)
	}()

	dst := OutputPath(p.OutDir, c, f.RelPath)
	if !p.Force {
		if n, ok := fsx.FileSize(dst); ok {
			o = succeeded(n, f.Size)
			o.Reused = true

			return o
		}
	}

	cctx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	n, err := c.Compress(cctx, f.AbsPath, dst)
	if err != nil {
		if compress.IsTimeout(err) {
			err = fmt.Errorf("timed out after %s: %w", p.Timeout, err)
		}

		return failed(err)
	}

	return succeeded(n, f.Size)
}

func succeeded(size, orig int64) Outcome {
	return Outcome{Size: size, Ratio: float64(size) / float64(orig)}
}

func failed(err error) Outcome {
	msg := err.Error()
	if msg == "" {
		msg = "unknown error"
	}

	return Outcome{Err: msg}
}
