package hub

import (
	"context"
	"fmt"

	apptun "github.com/Smiexh/vswitch/application/network/tun"
	infralogging "github.com/Smiexh/vswitch/infrastructure/logging"
	"github.com/Smiexh/vswitch/infrastructure/network/ip"
	"github.com/Smiexh/vswitch/infrastructure/routing"
	hubrouting "github.com/Smiexh/vswitch/infrastructure/routing/hub"
	"github.com/Smiexh/vswitch/infrastructure/routing/hub/session_management"
	"github.com/Smiexh/vswitch/infrastructure/settings"
	"github.com/Smiexh/vswitch/infrastructure/telemetry/trafficstats"
	infratun "github.com/Smiexh/vswitch/infrastructure/tun"
)

// drop log budget: lines per second and burst
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

// Run relays until ctx is cancelled. Setup failures are returned before any
// relay task starts.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.deps.Logger()
	conf := r.deps.Settings()

	// Pre-flight cleanup of an interface left behind by a previous run
	if err := r.deps.TunManager().DisposeDevices(); err != nil {
		logger.Warnf("preflight cleanup error: %v", err)
	}

	rawDevice, err := r.deps.TunManager().CreateDevice()
	if err != nil {
		return fmt.Errorf("error creating tun device: %w", err)
	}
	device := infratun.NewDisposableDevice(infratun.NewDirectionalDevice(rawDevice), r.deps.TunManager())

	transport, err := r.deps.Listener().Listen()
	if err != nil {
		_ = device.Close()
		return err
	}
	logger.Printf("hub listening on %s (UDP), interface %s, MTU %d", conf.Listen, conf.TunName, conf.MTU)

	table := session_management.NewTable(r.deps.Clock(), logger)
	stats := trafficstats.NewCollector()
	dropLogger := infralogging.NewThrottled(logger, dropLogRate, dropLogBurst)

	router := routing.NewRouter(
		func(ctx context.Context) apptun.Worker {
			return hubrouting.NewWorker(ctx, hubrouting.Dependencies{
				Device:     device,
				Transport:  transport,
				Table:      table,
				Parser:     ip.NewHeaderParser(),
				Logger:     logger,
				DropLogger: dropLogger,
				Stats:      stats,
			})
		},
		session_management.NewSweeper(table, r.deps.Clock(), logger, settings.SweepInterval, settings.LivenessTimeout),
		trafficstats.NewReporter(stats, logger, settings.StatsReportInterval),
		routing.CloseOnDone(transport, device),
	)

	if err := router.RouteTraffic(ctx); err != nil {
		return fmt.Errorf("error routing traffic: %w", err)
	}
	logger.Printf("hub stopped, %d session(s) dropped", table.Len())
	return nil
}
