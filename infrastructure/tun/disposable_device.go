package tun

import (
	"errors"
	"sync"

	"github.com/Smiexh/vswitch/application/network/tun"
)

// DisposableDevice tears the interface down through its manager on Close.
type DisposableDevice struct {
	device  tun.Device
	manager tun.Manager
	once    sync.Once
	err     error
}

func NewDisposableDevice(device tun.Device, manager tun.Manager) tun.Device {
	return &DisposableDevice{
		device:  device,
		manager: manager,
	}
}

func (d *DisposableDevice) Read(buffer []byte) (int, error) {
	return d.device.Read(buffer)
}

func (d *DisposableDevice) Write(data []byte) (int, error) {
	return d.device.Write(data)
}

func (d *DisposableDevice) Close() error {
	d.once.Do(func() {
		closeErr := d.device.Close()
		disposeErr := d.manager.DisposeDevices()
		d.err = errors.Join(closeErr, disposeErr)
	})
	return d.err
}
