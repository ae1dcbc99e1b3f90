package tun

import (
	"sync"

	"github.com/Smiexh/vswitch/application/network/tun"
)

// DirectionalDevice serializes readers and writers independently, so a read
// blocked on an idle interface never delays a write and vice versa.
// Close takes neither lock so it can interrupt a pending Read.
type DirectionalDevice struct {
	device  tun.Device
	readMu  sync.Mutex
	writeMu sync.Mutex
}

func NewDirectionalDevice(device tun.Device) tun.Device {
	return &DirectionalDevice{device: device}
}

func (d *DirectionalDevice) Read(data []byte) (int, error) {
	d.readMu.Lock()
	defer d.readMu.Unlock()
	return d.device.Read(data)
}

func (d *DirectionalDevice) Write(data []byte) (int, error) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return d.device.Write(data)
}

func (d *DirectionalDevice) Close() error {
	return d.device.Close()
}
