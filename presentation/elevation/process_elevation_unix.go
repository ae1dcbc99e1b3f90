//go:build !windows

package elevation

import (
	"os"
	"runtime"
)

// IsElevated returns true if we're running as root.
func IsElevated() bool {
	return os.Geteuid() == 0
}

func Hint() string {
	if runtime.GOOS == "linux" {
		return "run as root, or grant CAP_NET_ADMIN: sudo setcap cap_net_admin+ep <binary>"
	}
	return "run with sudo"
}
