//go:build darwin

package platform

import (
	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/PAL/darwin/utun"
)

func NewTunManager(name string, mtu int, logger logging.Logger) tun.Manager {
	return utun.NewTunManager(name, mtu, logger)
}
