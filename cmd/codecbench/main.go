// Command codecbench compresses every file of a directory tree with a set of
// codecs and reports per-file and aggregate compression ratios.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arloliu/codecbench/bench"
	"github.com/arloliu/codecbench/compress"
	"github.com/arloliu/codecbench/discover"
	"github.com/arloliu/codecbench/internal/check"
	"github.com/arloliu/codecbench/internal/collision"
	"github.com/arloliu/codecbench/internal/config"
	"github.com/arloliu/codecbench/internal/logging"
	"github.com/arloliu/codecbench/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// 1. Load config from defaults and CLI flags.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, args, stdout); err != nil {
		if errors.Is(err, config.ErrHelp) || errors.Is(err, config.ErrVersion) {
			return 0
		}
		fmt.Fprintf(stderr, "codecbench: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "codecbench: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg, logging.WithOutput(stdout, stderr))
	if err != nil {
		fmt.Fprintf(stderr, "codecbench: %v\n", err)
		return 1
	}
	defer log.Close()

	// 2. Probe the environment once; the result is immutable for the run.
	reg, err := compress.NewRegistry(compress.WithOptions(cfg.CodecOptions()))
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	env := reg.Probe()
	log.Debug(cfg.Verbose, "available codecs: %v", env.AvailableNames())

	if cfg.CheckOnly {
		if check.RunCheck(env, log) {
			return 0
		}
		return 1
	}

	// 3. Resolve codecs; unavailable ones are dropped unless required.
	sel, err := reg.Select(env, cfg.Algos, cfg.Require)
	for _, d := range sel.Dropped {
		log.Warn("%s unavailable, skipping: %s", d.Name, d.Reason)
	}
	if err != nil {
		log.Error("%v", err)
		log.Error("0 codecs available, nothing to do")
		return 1
	}
	if len(sel.Enabled) == 0 {
		log.Error("no requested codec is available")
		return 1
	}

	// 4. Discover input files.
	dopts := cfg.DiscoverOptions()
	dopts.OnSkip = func(path string, err error) {
		log.Warn("skipping unreadable %s: %v", path, err)
	}
	files, err := discover.Discover(cfg.InputDir, dopts)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if len(files) == 0 {
		log.Error("no files found in %s", cfg.InputDir)
		return 1
	}

	log.Info("In:      %s", cfg.InputDir)
	log.Info("Out:     %s", cfg.OutputDir)
	log.Info("Codecs:  %v", sel.EnabledNames())
	log.Info("Files:   %d (workers: %d)", len(files), cfg.Workers)
	for _, c := range sel.Enabled {
		d, _ := env.Descriptor(c.Name())
		log.Debug(cfg.Verbose, "%s: backend=%s options=%s fingerprint=%s", d.Name, d.Backend, d.Options, d.Fingerprint)
	}

	policy := cfg.Policy()
	if policy.FoldCase, err = collision.FoldsCase(cfg.OutputDir); err != nil {
		log.Warn("cannot tell whether %s is case-sensitive, assuming it is not: %v", cfg.OutputDir, err)
		policy.FoldCase = true
	}
	log.Debug(cfg.Verbose, "output filesystem folds case: %t", policy.FoldCase)

	// 5. Run every codec on every file.
	started := time.Now()
	results, runErr := bench.Run(ctx, files, sel.Enabled, policy, cfg.Workers, progress(log, cfg.Verbose, sel.EnabledNames()))

	// 6. Aggregate and persist whatever finished.
	descriptors := make([]compress.Descriptor, 0, len(sel.Enabled))
	for _, c := range sel.Enabled {
		d, _ := env.Descriptor(c.Name())
		descriptors = append(descriptors, d)
	}
	rep := report.Aggregate(results, descriptors)

	if err := report.Write(rep, cfg.OutputDir); err != nil {
		log.Error("%v", err)
		return 1
	}
	if err := report.WriteTable(log.Writer(), rep); err != nil {
		log.Error("%v", err)
		return 1
	}
	log.Info("Reports: %s, %s (%s)", report.JSONName, report.CSVName, time.Since(started).Round(time.Millisecond))

	if runErr != nil {
		log.Error("run interrupted after %d of %d files: %v", len(results), len(files), runErr)
		return 1
	}
	if rep.Failures > 0 {
		if cfg.Strict {
			log.Error("%d codec failures (strict mode)", rep.Failures)
			return 1
		}
		log.Warn("%d codec failures, see report", rep.Failures)
		return 0
	}
	log.Success("done")

	return 0
}

// progress logs one line per finished file plus any failed or reused codec.
func progress(log *logging.Logger, verbose bool, names []compress.Name) bench.Observer {
	return bench.ObserverFunc(func(done, total int, res bench.FileResult) {
		log.Info("[%d/%d] %s", done, total, res.File.RelPath)
		for _, name := range names {
			o, ok := res.Outcomes[name]
			switch {
			case !ok:
			case !o.OK():
				log.Warn("  %s failed: %s", name, o.Err)
			case o.Reused:
				log.Debug(verbose, "  %s reused existing output (%d bytes)", name, o.Size)
			default:
				log.Debug(verbose, "  %s %d bytes in %s", name, o.Size, o.Elapsed.Round(time.Millisecond))
			}
		}
	})
}
