package bench

import (
	"context"
	"errors"
	"sync"

	"github.com/arloliu/codecbench/compress"
	"github.com/arloliu/codecbench/discover"
	"github.com/arloliu/codecbench/internal/collision"
)

// ErrNoCodecs is returned by Run when no codec is enabled.
var ErrNoCodecs = errors.New("no codecs enabled")

// Observer receives a callback after each file completes. Callbacks are
// made from the goroutine that called Run.
type Observer interface {
	OnFileDone(done, total int, res FileResult)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(done, total int, res FileResult)

func (f ObserverFunc) OnFileDone(done, total int, res FileResult) { f(done, total, res) }

// Run compresses every file with every codec and returns one FileResult per
// completed file. With workers > 1 results arrive in completion order.
//
// When ctx is canceled no new tasks are dispatched; the results finished so
// far are returned together with ctx.Err().
func Run(ctx context.Context, files []discover.FileEntry, codecs []compress.Codec, p Policy, workers int, obs Observer) ([]FileResult, error) {
	if len(codecs) == 0 {
		return nil, ErrNoCodecs
	}

	// on a case-folding output filesystem paths that differ only by case
	// would share one artifact; the later file is failed instead
	tracker := collision.NewTracker()
	tasks := make([]Task, len(files))
	for i, f := range files {
		tasks[i] = Task{File: f, Codecs: codecs, Policy: p}
		if !p.FoldCase {
			continue
		}
		if err := tracker.Track(f.RelPath); err != nil {
			tasks[i].Blocked = err
		}
	}

	if workers <= 1 {
		return runSequential(ctx, tasks, obs)
	}

	return runPool(ctx, tasks, workers, obs)
}

func runSequential(ctx context.Context, tasks []Task, obs Observer) ([]FileResult, error) {
	results := make([]FileResult, 0, len(tasks))
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := Execute(ctx, t)
		results = append(results, res)
		if obs != nil {
			obs.OnFileDone(len(results), len(tasks), res)
		}
	}

	return results, ctx.Err()
}

func runPool(ctx context.Context, tasks []Task, workers int, obs Observer) ([]FileResult, error) {
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan Task)
	out := make(chan FileResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				out <- Execute(ctx, t)
			}
		}()
	}

	go func() {
	dispatch:
		for _, t := range tasks {
			select {
			case jobs <- t:
			case <-ctx.Done():
				break dispatch
			}
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	results := make([]FileResult, 0, len(tasks))
	for res := range out {
		results = append(results, res)
		if obs != nil {
			obs.OnFileDone(len(results), len(tasks), res)
		}
	}

	return results, ctx.Err()
}
