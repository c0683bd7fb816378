package modwt

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/voxwave/modwt/denoise"
	"github.com/voxwave/modwt/multilevel"
)

// maxBatchWorkers bounds the number of signals a batch call processes
// concurrently, matching spec.md §5's "thread pool" framing rather than
// spawning one goroutine per signal regardless of GOMAXPROCS.
func maxBatchWorkers() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

// BatchDecompose runs multilevel.Decompose over every signal in xs in
// parallel on a bounded worker pool (spec.md §5: "Batching layers may fan
// out over a thread pool; per-signal work is sequential"). It is
// all-or-nothing (spec.md §9 Open Question 3): if any signal fails or ctx
// is cancelled/expires before every signal completes, BatchDecompose
// returns a single wrapped error and no results, using
// errgroup.WithContext for cancellation and first-error propagation.
func BatchDecompose(ctx context.Context, xs [][]float64, w Wavelet, mode BoundaryMode, levels int) ([]*multilevel.Result, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchWorkers())
	results := make([]*multilevel.Result, len(xs))

	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := multilevel.Decompose(x, w, mode, levels)
			if err != nil {
				return fmt.Errorf("batch: signal %d: %w", i, err)
			}
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BatchDenoise constructs one denoise.Denoiser per signal, drives each to
// completion by feeding its entire signal and draining its output, and
// returns the concatenated denoised samples per signal, fanned out over a
// bounded worker pool with the same all-or-nothing contract as
// BatchDecompose.
func BatchDenoise(ctx context.Context, xs [][]float64, cfg denoise.Config) ([][]float64, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchWorkers())
	results := make([][]float64, len(xs))

	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			d, err := denoise.New(cfg)
			if err != nil {
				return fmt.Errorf("batch: signal %d: %w", i, err)
			}
			if err := d.Process(x); err != nil {
				d.Close()
				return fmt.Errorf("batch: signal %d: %w", i, err)
			}

			// Close drains any in-flight window before the output channel
			// closes; run it concurrently with draining so a full output
			// buffer can't deadlock against Close's wait for the consumer.
			go d.Close()

			out := make([]float64, 0, len(x))
			for b := range d.Blocks() {
				out = append(out, b.Samples...)
			}
			if c := <-d.Done(); c.Err != nil {
				return fmt.Errorf("batch: signal %d: %w", i, c.Err)
			}
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
