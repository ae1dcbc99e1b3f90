package session_management

import "time"

// Clock yields monotonic timestamps in milliseconds since an arbitrary epoch.
type Clock interface {
	NowMillis() int64
}

type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}
