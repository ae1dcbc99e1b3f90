//go:build linux

package platform

import (
	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/PAL/linux"
)

func NewTunManager(name string, mtu int, logger logging.Logger) tun.Manager {
	return linux.NewTunManager(name, mtu, logger)
}
