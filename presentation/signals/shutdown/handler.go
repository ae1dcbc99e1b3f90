package shutdown

import (
	"context"
	"os"
	"sync"

	"github.com/Smiexh/vswitch/application/logging"
	palSignal "github.com/Smiexh/vswitch/infrastructure/PAL/signal"
	"github.com/Smiexh/vswitch/presentation/signals"
)

// ForcedExitCode is used when a second shutdown signal arrives before the
// graceful shutdown has finished.
const ForcedExitCode = 130

type Handler struct {
	// appCtx is the application context; the handler stops once it is done.
	appCtx       context.Context
	appCtxCancel context.CancelFunc
	// 1-sized buffer: os/signal drops signals on a full channel.
	signalChan     chan os.Signal
	once           sync.Once
	signalProvider palSignal.Provider
	notifier       signals.Notifier
	logger         logging.Logger
	exit           func(code int)
}

func NewHandler(
	appCtx context.Context,
	appCtxCancel context.CancelFunc,
	signalProvider palSignal.Provider,
	notifier signals.Notifier,
	logger logging.Logger,
) *Handler {
	return &Handler{
		appCtx:         appCtx,
		appCtxCancel:   appCtxCancel,
		signalChan:     make(chan os.Signal, 1),
		signalProvider: signalProvider,
		notifier:       notifier,
		logger:         logger,
		exit:           os.Exit,
	}
}

var _ signals.Handler = (*Handler)(nil)

// Handle subscribes to the shutdown signals once. The first signal cancels
// the application context; a second one exits the process immediately.
func (h *Handler) Handle() {
	h.once.Do(func() {
		h.notifier.Notify(h.signalChan, h.signalProvider.ShutdownSignals()...)
		go h.wait()
	})
}

func (h *Handler) wait() {
	select {
	case sig := <-h.signalChan:
		h.logger.Printf("%v received, shutting down", sig)
		h.appCtxCancel()
	case <-h.appCtx.Done():
		h.notifier.Stop(h.signalChan)
		return
	}

	// keep listening so a stuck shutdown can be interrupted
	sig := <-h.signalChan
	h.notifier.Stop(h.signalChan)
	h.logger.Warnf("%v received again, exiting without cleanup", sig)
	h.exit(ForcedExitCode)
}
