package spoke

import (
	"context"
	"time"

	"github.com/Smiexh/vswitch/application/logging"
)

// HeartbeatEmitter keeps the spoke's session on the hub alive.
type HeartbeatEmitter struct {
	link     *Link
	logger   logging.Logger
	interval time.Duration
}

func NewHeartbeatEmitter(link *Link, logger logging.Logger, interval time.Duration) *HeartbeatEmitter {
	return &HeartbeatEmitter{
		link:     link,
		logger:   logger,
		interval: interval,
	}
}

// Run sends a Heartbeat every interval. The first send failure ends the
// emitter without an error; recovery is left to the receive loop.
func (h *HeartbeatEmitter) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.link.Send(heartbeatFrame); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				h.logger.Errorf("failed to send heartbeat: %v, heartbeat stopped", err)
				return nil
			}
			h.logger.Tracef("heartbeat sent")
		}
	}
}
