package arena

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/policies"
)

type SweepConfig struct {
	Seeds       []uint64
	Parallelism int
	// Progress, when set, returns the training progress callback for one seed
	Progress func(seed uint64) func(policies.EpisodeResult)
}

// Seeds returns n consecutive seeds starting at first.
func Seeds(first uint64, n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = first + uint64(i)
	}
	return seeds
}

// Sweep runs CompareWithSeed for every seed, at most Parallelism at a time. Results
// are returned in seed order. The first error cancels the remaining comparisons.
func (a *Arena) Sweep(ctx context.Context, p *core.Problem, cfg SweepConfig) ([]*Comparison, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		g.SetLimit(cfg.Parallelism)
	}

	results := make([]*Comparison, len(cfg.Seeds))
	for i, seed := range cfg.Seeds {
		i, seed := i, seed
		g.Go(func() error {
			var opts []policies.Option
			if cfg.Progress != nil {
				if f := cfg.Progress(seed); f != nil {
					opts = append(opts, policies.WithProgress(f))
				}
			}
			cmp, err := a.CompareWithSeed(gctx, p, seed, opts...)
			if err != nil {
				return err
			}
			results[i] = cmp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Runs flattens comparisons for core.Comparison.Analyze.
func Runs(cmps []*Comparison) []*core.Run {
	runs := make([]*core.Run, 0, 2*len(cmps))
	for _, c := range cmps {
		runs = append(runs, c.Runs()...)
	}
	return runs
}
