//go:build linux

package linux

import (
	"errors"
	"fmt"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/PAL/linux/syscall"
	"github.com/Smiexh/vswitch/infrastructure/PAL/linux/tun/epoll"
	"github.com/vishvananda/netlink"
)

// TunManager creates a TUN interface through /dev/net/tun and brings it up
// with the configured MTU over netlink. Addressing is left to the operator.
type TunManager struct {
	name   string
	mtu    int
	logger logging.Logger
}

func NewTunManager(name string, mtu int, logger logging.Logger) tun.Manager {
	return &TunManager{
		name:   name,
		mtu:    mtu,
		logger: logger,
	}
}

func (m *TunManager) CreateDevice() (tun.Device, error) {
	tunFile, name, err := syscall.OpenTun(m.name)
	if err != nil {
		return nil, err
	}

	link, linkErr := netlink.LinkByName(name)
	if linkErr != nil {
		_ = tunFile.Close()
		return nil, fmt.Errorf("failed to look up %s: %w", name, linkErr)
	}
	if mtuErr := netlink.LinkSetMTU(link, m.mtu); mtuErr != nil {
		_ = tunFile.Close()
		return nil, fmt.Errorf("failed to set %d MTU for %s: %w", m.mtu, name, mtuErr)
	}
	if upErr := netlink.LinkSetUp(link); upErr != nil {
		_ = tunFile.Close()
		return nil, fmt.Errorf("failed to bring %s up: %w", name, upErr)
	}

	device, wrapErr := epoll.NewTUN(tunFile)
	if wrapErr != nil {
		_ = tunFile.Close()
		return nil, wrapErr
	}

	m.logger.Printf("TUN interface %s is up (MTU %d)", name, m.mtu)
	return device, nil
}

// DisposeDevices brings the interface down. The kernel removes a
// non-persistent TUN interface once its last handle is closed.
func (m *TunManager) DisposeDevices() error {
	link, err := netlink.LinkByName(m.name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return netlink.LinkSetDown(link)
}
