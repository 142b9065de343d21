package marketplace

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// outcome is the settled result of one task.
type outcome[T any] struct {
	Key   string
	Value T
	Err   error
}

// settleAll runs fn for every key concurrently and waits for all of them.
// A failing task never cancels its siblings; results come back in key order.
func settleAll[T any](ctx context.Context, keys []string, fn func(context.Context, string) (T, error)) []outcome[T] {
	results := make([]outcome[T], len(keys))
	var g errgroup.Group
	for i, key := range keys {
		g.Go(func() error {
			v, err := fn(ctx, key)
			results[i] = outcome[T]{Key: key, Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
