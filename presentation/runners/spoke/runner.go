package spoke

import (
	"context"
	"fmt"

	apptun "github.com/Smiexh/vswitch/application/network/tun"
	infralogging "github.com/Smiexh/vswitch/infrastructure/logging"
	"github.com/Smiexh/vswitch/infrastructure/routing"
	spokerouting "github.com/Smiexh/vswitch/infrastructure/routing/spoke"
	"github.com/Smiexh/vswitch/infrastructure/settings"
	"github.com/Smiexh/vswitch/infrastructure/telemetry/trafficstats"
	infratun "github.com/Smiexh/vswitch/infrastructure/tun"
)

const (
	dropLogRate  = 5
	dropLogBurst = 10
)

type Runner struct {
	deps AppDependencies
}

func NewRunner(deps AppDependencies) *Runner {
	return &Runner{deps: deps}
}

// Run tunnels the local interface to the hub until ctx is cancelled or the
// hub sends Disconnect. On cancellation the hub is told the spoke is leaving.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.deps.Logger()
	conf := r.deps.Settings()

	if err := r.deps.TunManager().DisposeDevices(); err != nil {
		logger.Warnf("preflight cleanup error: %v", err)
	}

	rawDevice, err := r.deps.TunManager().CreateDevice()
	if err != nil {
		return fmt.Errorf("error creating tun device: %w", err)
	}
	device := infratun.NewDisposableDevice(infratun.NewDirectionalDevice(rawDevice), r.deps.TunManager())

	link := spokerouting.NewLink(r.deps.Connection())
	if err := link.Join(ctx); err != nil {
		_ = device.Close()
		return fmt.Errorf("failed to connect to hub %s: %w", conf.Server, err)
	}
	logger.Printf("connect sent to hub %s, interface %s, MTU %d", conf.Server, conf.TunName, conf.MTU)

	stats := trafficstats.NewCollector()
	dropLogger := infralogging.NewThrottled(logger, dropLogRate, dropLogBurst)

	router := routing.NewRouter(
		func(ctx context.Context) apptun.Worker {
			return spokerouting.NewWorker(ctx, spokerouting.Dependencies{
				Device:     device,
				Link:       link,
				Logger:     logger,
				DropLogger: dropLogger,
				Stats:      stats,
			})
		},
		spokerouting.NewHeartbeatEmitter(link, logger, settings.HeartbeatInterval),
		trafficstats.NewReporter(stats, logger, settings.StatsReportInterval),
		routing.CloseOnDone(link, device),
	)

	if err := router.RouteTraffic(ctx); err != nil {
		return fmt.Errorf("error routing traffic: %w", err)
	}
	logger.Printf("spoke stopped")
	return nil
}
