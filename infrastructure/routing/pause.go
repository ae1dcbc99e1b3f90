package routing

import (
	"context"
	"time"
)

// Pause sleeps for d or until ctx is done. It reports whether the full
// pause elapsed.
func Pause(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
