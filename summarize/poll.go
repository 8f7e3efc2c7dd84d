package summarize

import (
	"context"
	"time"
)

// pollUntil calls fn at the given interval until it reports done, returns an
// error, or the context expires. The first call happens after one interval.
func pollUntil(ctx context.Context, interval time.Duration, fn func(context.Context) (bool, error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			done, err := fn(ctx)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}
