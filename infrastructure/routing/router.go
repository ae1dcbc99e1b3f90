package routing

import (
	"context"
	"errors"
	"io"

	"github.com/Smiexh/vswitch/application/network/routing"
	"github.com/Smiexh/vswitch/application/network/tun"

	"golang.org/x/sync/errgroup"
)

// Task is a background loop that runs alongside a worker, such as the
// session sweeper or the heartbeat emitter.
type Task interface {
	Run(ctx context.Context) error
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func(ctx context.Context) error

func (f TaskFunc) Run(ctx context.Context) error { return f(ctx) }

// WorkerFactory builds a worker bound to the relay context.
type WorkerFactory func(ctx context.Context) tun.Worker

type Router struct {
	newWorker WorkerFactory
	tasks     []Task
}

func NewRouter(newWorker WorkerFactory, tasks ...Task) routing.Router {
	return &Router{
		newWorker: newWorker,
		tasks:     tasks,
	}
}

// RouteTraffic runs both worker directions and every task under one relay
// context. The relay context is cancelled as soon as a worker direction
// returns or a task fails; a task that returns nil just ends. The first
// non-nil error is returned once everything has stopped.
func (r *Router) RouteTraffic(ctx context.Context) error {
	relayCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	worker := r.newWorker(relayCtx)
	g := new(errgroup.Group)

	for _, direction := range []func() error{worker.HandleTun, worker.HandleTransport} {
		g.Go(func() error {
			defer cancel()
			return direction()
		})
	}
	for _, task := range r.tasks {
		g.Go(func() error {
			if err := task.Run(relayCtx); err != nil {
				cancel()
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// CloseOnDone returns a task that closes every closer once the relay stops.
// Closing the socket and the device is what unblocks pending reads.
func CloseOnDone(closers ...io.Closer) Task {
	return TaskFunc(func(ctx context.Context) error {
		<-ctx.Done()
		var errs []error
		for _, c := range closers {
			if err := c.Close(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
