// Package batch runs independent jobs on a bounded worker pool and returns
// their results in input order.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one job.
type Result[R any] struct {
	Value R
	Err   error
}

// Run applies fn to every item with at most workers concurrent calls.
// Results are positional: out[i] belongs to items[i]. A failing item does not
// stop the others; its error is kept in its Result. Run itself fails only when
// ctx is cancelled before all items were started.
func Run[T, R any](ctx context.Context, items []T, workers int, fn func(ctx context.Context, item T) (R, error)) ([]Result[R], error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Result[R], len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return nil, err
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			v, err := fn(ctx, item)
			out[i] = Result[R]{Value: v, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}
