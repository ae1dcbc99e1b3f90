package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/domain/app"
	"github.com/Smiexh/vswitch/domain/mode"
	"github.com/Smiexh/vswitch/infrastructure/PAL/platform"
	palSignal "github.com/Smiexh/vswitch/infrastructure/PAL/signal"
	infralogging "github.com/Smiexh/vswitch/infrastructure/logging"
	"github.com/Smiexh/vswitch/infrastructure/network/udp"
	"github.com/Smiexh/vswitch/infrastructure/routing/hub/session_management"
	"github.com/Smiexh/vswitch/infrastructure/settings"
	"github.com/Smiexh/vswitch/presentation/configuration"
	"github.com/Smiexh/vswitch/presentation/elevation"
	"github.com/Smiexh/vswitch/presentation/mode_selection"
	hubRunner "github.com/Smiexh/vswitch/presentation/runners/hub"
	spokeRunner "github.com/Smiexh/vswitch/presentation/runners/spoke"
	"github.com/Smiexh/vswitch/presentation/runners/version"
	"github.com/Smiexh/vswitch/presentation/signals"
	"github.com/Smiexh/vswitch/presentation/signals/shutdown"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	uiMode := app.DetectUIMode(term.IsTerminal(int(os.Stdin.Fd())))
	bootLogger := infralogging.NewPtermLogger(pterm.LogLevelInfo)

	appMode := mode_selection.NewPicker(os.Args, uiMode.Interactive())
	selectedMode, selectedModeErr := appMode.Mode()
	if selectedModeErr != nil {
		bootLogger.Errorf("%v", selectedModeErr)
		printUsage()
		os.Exit(exitUsage)
	}

	if selectedMode == mode.Version {
		if err := version.NewRunner().Run(appCtx); err != nil {
			os.Exit(exitFailure)
		}
		return
	}

	conf, confErr := configuration.NewResolver(uiMode.Interactive()).Resolve(selectedMode, modeArguments(os.Args))
	if confErr != nil {
		if errors.Is(confErr, configuration.ErrHelpRequested) {
			return
		}
		bootLogger.Errorf("invalid configuration: %v", confErr)
		os.Exit(exitUsage)
	}

	level, _ := infralogging.ParseLevel(conf.LogLevel)
	logger := infralogging.NewPtermLogger(level)

	if !elevation.IsElevated() {
		logger.Warnf("%s is not running with admin privileges, creating the interface may fail: %s",
			app.Name, elevation.Hint())
	}

	shutdown.NewHandler(appCtx, appCtxCancel, palSignal.NewDefaultProvider(), signals.OSNotifier{}, logger).Handle()

	logger.Printf("%s %s starting in %s mode", app.Name, version.Current(), selectedMode)
	if err := run(appCtx, selectedMode, conf, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(exitFailure)
	}
}

func run(ctx context.Context, m mode.Mode, conf settings.Settings, logger logging.Logger) error {
	tunManager := platform.NewTunManager(conf.TunName, conf.MTU, logger)

	switch m {
	case mode.Hub:
		listenAddr, err := conf.ListenAddrPort()
		if err != nil {
			return err
		}
		deps := hubRunner.NewDependencies(
			conf, tunManager, udp.NewListener(listenAddr), session_management.NewMonotonicClock(), logger,
		)
		return hubRunner.NewRunner(deps).Run(ctx)
	case mode.Spoke:
		serverAddr, err := conf.ServerAddrPort()
		if err != nil {
			return err
		}
		deps := spokeRunner.NewDependencies(conf, tunManager, udp.NewUDPConnection(serverAddr), logger)
		return spokeRunner.NewRunner(deps).Run(ctx)
	default:
		return fmt.Errorf("unsupported mode %s", m)
	}
}

// modeArguments returns the flags that follow the mode argument.
func modeArguments(args []string) []string {
	if len(args) < 3 {
		return nil
	}
	return args[2:]
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %[1]s <mode> [flags]
Modes:
  hub (s)      relay packets between spokes   [-listen ip:port] [-tun-name name] [-mtu n]
  spoke (c)    tunnel this host to a hub       -server host:port [-tun-name name] [-mtu n]
  version (v)  print the version
Common flags: [-log-level error|warn|info|debug|trace] [-config file.toml]
Run '%[1]s <mode> -h' for details.
`, app.Name)
}
