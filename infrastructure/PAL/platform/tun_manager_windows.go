//go:build windows

package platform

import (
	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/PAL/windows/wtun"
)

func NewTunManager(name string, mtu int, logger logging.Logger) tun.Manager {
	return wtun.NewTunManager(name, mtu, logger)
}
