package poseidonfold

import (
	"context"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vocdoni/poseidonfold/schedule"
)

// PermuteBatch permutes independent states in parallel. The i-th result
// belongs to states[i].
func (p *Permutation) PermuteBatch(ctx context.Context, states [][]fr.Element) ([][]fr.Element, error) {
	return p.ChainBatch(ctx, states, []schedule.Segment{p.schedule.Whole()})
}

// ChainBatch runs the same segment chain over independent states in
// parallel. Chains never share state, so only the tables are shared.
func (p *Permutation) ChainBatch(ctx context.Context, states [][]fr.Element, segs []schedule.Segment) ([][]fr.Element, error) {
	out := make([][]fr.Element, len(states))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range states {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.Chain(states[i], segs)
			if err != nil {
				return errors.Wrapf(err, "state %d", i)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
