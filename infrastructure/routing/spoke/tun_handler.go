package spoke

import (
	"context"
	"io"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/domain/network/message"
	"github.com/Smiexh/vswitch/infrastructure/routing"
	"github.com/Smiexh/vswitch/infrastructure/settings"
	"github.com/Smiexh/vswitch/infrastructure/telemetry/trafficstats"
)

type TunHandler struct {
	ctx    context.Context
	reader io.Reader
	link   *Link
	logger logging.Logger
	stats  *trafficstats.Collector
}

func NewTunHandler(
	ctx context.Context,
	reader io.Reader,
	link *Link,
	logger logging.Logger,
	stats *trafficstats.Collector,
) *TunHandler {
	return &TunHandler{
		ctx:    ctx,
		reader: reader,
		link:   link,
		logger: logger,
		stats:  stats,
	}
}

// HandleTun sends every packet read from the TUN interface to the hub as a
// Data frame. The packet is read after a reserved header area, see
// hub.TunHandler for the layout.
func (t *TunHandler) HandleTun() error {
	buffer := make([]byte, settings.ReceiveBufferSize)

	for {
		select {
		case <-t.ctx.Done():
			return nil
		default:
			n, readErr := t.reader.Read(buffer[message.HeaderSize:])
			if readErr != nil {
				if t.ctx.Err() != nil {
					return nil
				}
				t.logger.Errorf("failed to read from TUN: %v", readErr)
				routing.Pause(t.ctx, settings.InterfaceErrorPause)
				continue
			}
			if n == 0 {
				continue
			}

			frame := buffer[:message.HeaderSize+n]
			message.EncodeTo(frame, message.NewData(frame[message.HeaderSize:]))
			if sendErr := t.link.Send(frame); sendErr != nil {
				if t.ctx.Err() != nil {
					return nil
				}
				t.logger.Errorf("failed to send packet to hub: %v", sendErr)
				routing.Pause(t.ctx, settings.InterfaceErrorPause)
				continue
			}
			t.stats.AddTX(n)
		}
	}
}
