package hub

import (
	"context"
	"io"
	"net/netip"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/connection"
	appip "github.com/Smiexh/vswitch/application/network/ip"
	"github.com/Smiexh/vswitch/domain/network/message"
	"github.com/Smiexh/vswitch/infrastructure/network/ip"
	"github.com/Smiexh/vswitch/infrastructure/routing"
	"github.com/Smiexh/vswitch/infrastructure/routing/hub/session_management"
	"github.com/Smiexh/vswitch/infrastructure/settings"
	"github.com/Smiexh/vswitch/infrastructure/telemetry/trafficstats"
)

var (
	connectFrame   = message.Encode(message.NewConnect())
	heartbeatFrame = message.Encode(message.NewHeartbeat())
)

type TransportHandler struct {
	ctx        context.Context
	writer     io.Writer
	transport  connection.PacketTransport
	table      *session_management.Table
	parser     appip.HeaderParser
	logger     logging.Logger
	dropLogger logging.Logger
	stats      *trafficstats.Collector
}

func NewTransportHandler(
	ctx context.Context,
	writer io.Writer,
	transport connection.PacketTransport,
	table *session_management.Table,
	parser appip.HeaderParser,
	logger logging.Logger,
	dropLogger logging.Logger,
	stats *trafficstats.Collector,
) *TransportHandler {
	return &TransportHandler{
		ctx:        ctx,
		writer:     writer,
		transport:  transport,
		table:      table,
		parser:     parser,
		logger:     logger,
		dropLogger: dropLogger,
		stats:      stats,
	}
}

// HandleTransport receives datagrams until the context is cancelled.
// Receive errors are logged and followed by a short pause; they never end the loop.
func (t *TransportHandler) HandleTransport() error {
	buffer := make([]byte, settings.ReceiveBufferSize)

	for {
		select {
		case <-t.ctx.Done():
			return nil
		default:
			n, from, readErr := t.transport.ReadFrom(buffer)
			if readErr != nil {
				if t.ctx.Err() != nil {
					return nil
				}
				t.logger.Errorf("failed to receive datagram: %v", readErr)
				routing.Pause(t.ctx, settings.HubReceiveErrorPause)
				continue
			}
			if n == 0 {
				t.logger.Debugf("empty datagram from %v", from)
				continue
			}
			t.Dispatch(from, buffer[:n])
		}
	}
}

// Dispatch applies one datagram received from endpoint. datagram may be
// reused by the caller once Dispatch returns.
func (t *TransportHandler) Dispatch(from netip.AddrPort, datagram []byte) {
	msg, decodeErr := message.DecodeView(datagram)
	if decodeErr != nil {
		t.stats.AddDropped()
		t.dropLogger.Warnf("datagram dropped: %v, %d bytes from %v", decodeErr, len(datagram), from)
		return
	}

	switch msg.Kind {
	case message.Connect:
		if t.table.Touch(from) {
			t.logger.Printf("%v connected, %d session(s)", from, t.table.Len())
		} else {
			t.logger.Printf("%v reconnected", from)
		}
		t.reply(from, connectFrame)
	case message.Data:
		t.stats.AddRX(len(msg.Payload))
		src, hasSource := t.parser.SourceAddress(msg.Payload)
		if t.table.Observe(from, src) {
			t.logger.Printf("%v joined by sending data, %d session(s)", from, t.table.Len())
		}
		if !hasSource {
			t.dropLogger.Debugf("no source address in data from %v: %s", from, ip.Summary(msg.Payload))
		}
		if _, writeErr := t.writer.Write(msg.Payload); writeErr != nil {
			if t.ctx.Err() != nil {
				return
			}
			t.logger.Errorf("failed to write to TUN: %v, %d bytes", writeErr, len(msg.Payload))
		}
	case message.Heartbeat:
		t.table.Touch(from)
		t.logger.Tracef("heartbeat from %v", from)
		t.reply(from, heartbeatFrame)
	case message.Disconnect:
		if t.table.Remove(from) {
			t.logger.Printf("%v disconnected, %d session(s) remaining", from, t.table.Len())
		} else {
			t.logger.Warnf("disconnect from unknown endpoint %v", from)
		}
	}
}

func (t *TransportHandler) reply(to netip.AddrPort, frame []byte) {
	if _, err := t.transport.WriteTo(frame, to); err != nil {
		t.logger.Errorf("failed to reply to %v: %v", to, err)
	}
}
