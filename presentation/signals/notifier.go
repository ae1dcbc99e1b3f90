package signals

import (
	"os"
	"os/signal"
)

// Notifier subscribes channels to OS signals. It exists so handlers can be
// tested without delivering real signals.
type Notifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// Handler reacts to OS signals until the application context ends.
type Handler interface {
	Handle()
}

type OSNotifier struct{}

func (OSNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }

func (OSNotifier) Stop(c chan<- os.Signal) { signal.Stop(c) }
