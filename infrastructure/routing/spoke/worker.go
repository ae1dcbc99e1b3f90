package spoke

import (
	"context"
	"io"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/telemetry/trafficstats"
)

type Dependencies struct {
	Device     io.ReadWriter
	Link       *Link
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
		tunHandler:       NewTunHandler(ctx, deps.Device, deps.Link, deps.Logger, stats),
		transportHandler: NewTransportHandler(ctx, deps.Device, deps.Link, deps.Logger, dropLogger, stats),
	}
}

func (w *Worker) HandleTun() error {
	return w.tunHandler.HandleTun()
}

func (w *Worker) HandleTransport() error {
	return w.transportHandler.HandleTransport()
}
