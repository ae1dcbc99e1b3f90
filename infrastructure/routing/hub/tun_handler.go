package hub

import (
	"context"
	"io"

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

type TunHandler struct {
	ctx        context.Context
	reader     io.Reader
	transport  connection.PacketTransport
	table      *session_management.Table
	parser     appip.HeaderParser
	logger     logging.Logger
	dropLogger logging.Logger
	stats      *trafficstats.Collector
}

func NewTunHandler(
	ctx context.Context,
	reader io.Reader,
	transport connection.PacketTransport,
	table *session_management.Table,
	parser appip.HeaderParser,
	logger logging.Logger,
	dropLogger logging.Logger,
	stats *trafficstats.Collector,
) *TunHandler {
	return &TunHandler{
		ctx:        ctx,
		reader:     reader,
		transport:  transport,
		table:      table,
		parser:     parser,
		logger:     logger,
		dropLogger: dropLogger,
		stats:      stats,
	}
}

// HandleTun reads packets from the TUN interface and forwards each one to
// the spoke that owns its destination address.
//
// Buffer layout (total size = settings.ReceiveBufferSize):
//
//	[ 0 ........ 4 ][ 5 ................ 4095 ]
//	| frame header |     packet read from TUN  |
//
// The packet is read right after the header area, so a Data frame is built
// in place without copying.
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
			t.Forward(buffer[:message.HeaderSize+n])
		}
	}
}

// Forward sends frame, whose packet starts at message.HeaderSize, to the
// endpoint routed for the packet's destination. The header is filled in
// place. Packets without a route are dropped.
func (t *TunHandler) Forward(frame []byte) {
	packet := frame[message.HeaderSize:]
	dst, ok := t.parser.DestinationAddress(packet)
	if !ok {
		t.stats.AddDropped()
		t.dropLogger.Debugf("packet dropped: no destination address, %s", ip.Summary(packet))
		return
	}

	endpoint, found := t.table.LookupEndpoint(dst)
	if !found {
		t.stats.AddDropped()
		t.dropLogger.Debugf("packet dropped: no route to %v, %s", dst, ip.Summary(packet))
		return
	}

	message.EncodeTo(frame, message.NewData(packet))
	if _, writeErr := t.transport.WriteTo(frame, endpoint); writeErr != nil {
		if t.ctx.Err() != nil {
			return
		}
		t.logger.Errorf("failed to send packet to %v: %v", endpoint, writeErr)
		return
	}
	t.stats.AddTX(len(packet))
}
