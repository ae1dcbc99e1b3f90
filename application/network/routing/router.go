package routing

import "context"

// Router runs a relay until ctx is cancelled or one of its tasks fails.
type Router interface {
	RouteTraffic(ctx context.Context) error
}
