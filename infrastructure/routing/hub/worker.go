package hub

import (
	"context"
	"io"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/connection"
	appip "github.com/Smiexh/vswitch/application/network/ip"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/routing/hub/session_management"
	"github.com/Smiexh/vswitch/infrastructure/telemetry/trafficstats"
)

// Dependencies are shared by both directions of a hub worker.
type Dependencies struct {
	Device     io.ReadWriter
	Transport  connection.PacketTransport
	Table      *session_management.Table
	Parser     appip.HeaderParser
	Logger     logging.Logger
	DropLogger logging.Logger
	Stats      *trafficstats.Collector
}

type Worker struct {
	tunHandler       *TunHandler
	transportHandler *TransportHandler
}

var _ tun.Worker = (*Worker)(nil)

func NewWorker(ctx context.Context, deps Dependencies) *Worker {
	dropLogger := deps.DropLogger
	if dropLogger == nil {
		dropLogger = deps.Logger
	}
	stats := deps.Stats
	if stats == nil {
		stats = trafficstats.NewCollector()
	}
	return &Worker{
		tunHandler: NewTunHandler(
			ctx, deps.Device, deps.Transport, deps.Table, deps.Parser, deps.Logger, dropLogger, stats,
		),
		transportHandler: NewTransportHandler(
			ctx, deps.Device, deps.Transport, deps.Table, deps.Parser, deps.Logger, dropLogger, stats,
		),
	}
}

func (w *Worker) HandleTun() error {
	return w.tunHandler.HandleTun()
}

func (w *Worker) HandleTransport() error {
	return w.transportHandler.HandleTransport()
}
