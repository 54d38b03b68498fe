package kd

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// QueryMany runs a window query for every rect, with at most workers
// queries in flight, and returns the results in the order of rects.
// workers <= 0 means no limit.
//
// The tree must not be modified until QueryMany returns.
//
// Context cancellation: once ctx is canceled no new queries are
// started; QueryMany waits for running ones and returns the
// context error.
func (t *Tree[T]) QueryMany(
	ctx context.Context, rects []Rect[T], workers int,
) ([][]Point[T], error) {
	if t.root == nil {
		return nil, fmt.Errorf("query %d windows: %w", len(rects), ErrNotConstructed)
	}

	result := make([][]Point[T], len(rects))

	eg, egCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for i, r := range rects {
		if egCtx.Err() != nil {
			break
		}

		i, r := i, r
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			points, err := t.QueryRect(r)
			if err != nil {
				return err
			}
			result[i] = points
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// canceled while no query was running
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
