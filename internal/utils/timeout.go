package utils

import (
	"context"
	"time"
)

// Bounded returns ctx limited to d. A non-positive d leaves ctx as it is and
// the returned cancel does nothing.
func Bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, d)
}
