package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Both runs first and second at the same time and waits for them. When one
// fails, the other sees its context cancelled and both values are dropped.
func Both[A, B any](
	ctx context.Context,
	first func(context.Context) (A, error),
	second func(context.Context) (B, error),
) (A, B, error) {
	var (
		a A
		b B
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = first(gctx)
		return err
	})
	g.Go(func() (err error) {
		b, err = second(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		var (
			noA A
			noB B
		)

		return noA, noB, fmt.Errorf("concurrent fetch: %w", err)
	}

	return a, b, nil
}
