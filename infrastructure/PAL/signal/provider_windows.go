//go:build windows

package signal

import (
	"os"
	"syscall"
)

// Go maps console close and system shutdown events to SIGTERM.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
