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

type TransportHandler struct {
	ctx        context.Context
	writer     io.Writer
	link       *Link
	logger     logging.Logger
	dropLogger logging.Logger
	stats      *trafficstats.Collector
}

func NewTransportHandler(
	ctx context.Context,
	writer io.Writer,
	link *Link,
	logger logging.Logger,
	dropLogger logging.Logger,
	stats *trafficstats.Collector,
) *TransportHandler {
	return &TransportHandler{
		ctx:        ctx,
		writer:     writer,
		link:       link,
		logger:     logger,
		dropLogger: dropLogger,
		stats:      stats,
	}
}

// HandleTransport receives frames from the hub. It returns nil when the hub
// sends Disconnect or the context is cancelled. A receive error triggers a
// rejoin after settings.ReconnectBackoff; frames lost meanwhile are not replayed.
func (t *TransportHandler) HandleTransport() error {
	buffer := make([]byte, settings.ReceiveBufferSize)

	for {
		select {
		case <-t.ctx.Done():
			return nil
		default:
			n, readErr := t.link.Receive(buffer)
			if readErr != nil {
				if t.ctx.Err() != nil {
					return nil
				}
				t.logger.Errorf("failed to receive from hub: %v", readErr)
				t.rejoin()
				continue
			}
			if n == 0 {
				t.logger.Debugf("empty datagram from hub")
				continue
			}

			msg, decodeErr := message.DecodeView(buffer[:n])
			if decodeErr != nil {
				t.stats.AddDropped()
				t.dropLogger.Warnf("datagram dropped: %v, %d bytes from hub", decodeErr, n)
				continue
			}

			switch msg.Kind {
			case message.Connect:
				t.logger.Printf("hub acknowledged connection")
			case message.Data:
				t.stats.AddRX(len(msg.Payload))
				if _, writeErr := t.writer.Write(msg.Payload); writeErr != nil {
					if t.ctx.Err() != nil {
						return nil
					}
					t.logger.Errorf("failed to write to TUN: %v, %d bytes", writeErr, len(msg.Payload))
				}
			case message.Heartbeat:
				t.logger.Tracef("hub answered heartbeat")
			case message.Disconnect:
				t.logger.Printf("hub requested disconnect")
				return nil
			}
		}
	}
}

func (t *TransportHandler) rejoin() {
	if !routing.Pause(t.ctx, settings.ReconnectBackoff) {
		return
	}
	t.logger.Printf("reconnecting to hub")
	if err := t.link.Join(t.ctx); err != nil {
		if t.ctx.Err() == nil {
			t.logger.Errorf("failed to reconnect: %v", err)
		}
		return
	}
	t.logger.Printf("reconnected, connect sent")
}
