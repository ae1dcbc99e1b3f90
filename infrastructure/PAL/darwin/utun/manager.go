//go:build darwin

package utun

import (
	"fmt"
	"strings"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/tun"
	wgtun "golang.zx2c4.com/wireguard/tun"
)

// TunManager creates a utun interface. A configured name without the utun
// prefix is ignored and the kernel picks the next free utunN.
type TunManager struct {
	name   string
	mtu    int
	logger logging.Logger
}

func NewTunManager(name string, mtu int, logger logging.Logger) tun.Manager {
	return &TunManager{name: name, mtu: mtu, logger: logger}
}

func (m *TunManager) CreateDevice() (tun.Device, error) {
	requested := "utun"
	if strings.HasPrefix(m.name, "utun") {
		requested = m.name
	} else {
		m.logger.Warnf("interface name %q is not a utun name, letting the kernel choose", m.name)
	}

	dev, err := wgtun.CreateTUN(requested, m.mtu)
	if err != nil {
		return nil, fmt.Errorf("failed to create utun device: %w", err)
	}
	name, _ := dev.Name()
	m.logger.Printf("TUN interface %s is up (MTU %d)", name, m.mtu)
	return NewWgTunAdapter(dev), nil
}

// DisposeDevices is a no-op: the utun interface disappears with its socket.
func (m *TunManager) DisposeDevices() error {
	return nil
}
