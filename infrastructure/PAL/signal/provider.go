// Package signal lists the OS signals that stop the relay.
package signal

import "os"

type Provider interface {
	ShutdownSignals() []os.Signal
}

// Platform reports the shutdown signals of the running OS.
type Platform struct{}

func NewDefaultProvider() Provider {
	return Platform{}
}

// ShutdownSignals returns a fresh slice on every call.
func (Platform) ShutdownSignals() []os.Signal {
	return append([]os.Signal(nil), shutdownSignals...)
}
