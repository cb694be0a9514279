package concurrency

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is one independent unit of a fan-out.
type Task func(ctx context.Context) error

// Join runs every task concurrently and waits for all of them. Each task gets its own timeout
// when timeout > 0. The first failure cancels the remaining tasks and is returned.
func Join(ctx context.Context, timeout time.Duration, tasks ...Task) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			taskCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				taskCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return task(taskCtx)
		})
	}
	return g.Wait()
}
