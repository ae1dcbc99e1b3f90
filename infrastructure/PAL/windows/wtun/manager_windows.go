//go:build windows

package wtun

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/tun"
	"golang.zx2c4.com/wintun"
)

const tunnelType = "vswitch"

// TunManager creates (or reopens) a Wintun adapter. wintun.dll must be
// reachable through the DLL search path.
type TunManager struct {
	name    string
	mtu     int
	logger  logging.Logger
	adapter *wintun.Adapter
}

func NewTunManager(name string, mtu int, logger logging.Logger) tun.Manager {
	return &TunManager{name: name, mtu: mtu, logger: logger}
}

func (m *TunManager) CreateDevice() (tun.Device, error) {
	adapter, err := wintun.OpenAdapter(m.name)
	if err != nil {
		adapter, err = wintun.CreateAdapter(m.name, tunnelType, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Wintun adapter: %w", err)
		}
	}
	m.adapter = adapter

	if err := m.setMTU(); err != nil {
		_ = adapter.Close()
		m.adapter = nil
		return nil, err
	}

	dev, err := newDevice(adapter)
	if err != nil {
		_ = adapter.Close()
		m.adapter = nil
		return nil, err
	}
	m.logger.Printf("Wintun interface %s is up (MTU %d)", m.name, m.mtu)
	return dev, nil
}

func (m *TunManager) setMTU() error {
	for _, family := range []string{"ipv4", "ipv6"} {
		out, err := exec.Command("netsh", "interface", family, "set", "subinterface",
			m.name, "mtu="+strconv.Itoa(m.mtu), "store=active").CombinedOutput()
		if err != nil {
			return fmt.Errorf("failed to set %s MTU on %s: %v, output: %s", family, m.name, err, out)
		}
	}
	return nil
}

// DisposeDevices closes the adapter, which removes it from the system.
func (m *TunManager) DisposeDevices() error {
	if m.adapter == nil {
		return nil
	}
	err := m.adapter.Close()
	m.adapter = nil
	return err
}
