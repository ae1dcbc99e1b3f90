//go:build windows

package wtun

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/Smiexh/vswitch/application/network/tun"
	"golang.org/x/sys/windows"
	"golang.zx2c4.com/wintun"
)

const ringSize = 8 << 20 // 8 MiB

// device exposes a Wintun session as a tun.Device. Close signals closeEvent
// so a Read parked in WaitForMultipleObjects returns immediately.
type device struct {
	adapter    *wintun.Adapter
	session    wintun.Session
	closeEvent windows.Handle
	closed     atomic.Bool
	closeOnce  sync.Once
}

func newDevice(adapter *wintun.Adapter) (tun.Device, error) {
	ev, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	session, err := adapter.StartSession(ringSize)
	if err != nil {
		_ = windows.CloseHandle(ev)
		return nil, fmt.Errorf("start session: %w", err)
	}
	return &device{
		adapter:    adapter,
		session:    session,
		closeEvent: ev,
	}, nil
}

func (d *device) Read(data []byte) (int, error) {
	for {
		if d.closed.Load() {
			return 0, io.ErrClosedPipe
		}
		packet, err := d.session.ReceivePacket()
		if err == nil {
			n := copy(data, packet)
			d.session.ReleaseReceivePacket(packet)
			return n, nil
		}
		if !errors.Is(err, windows.ERROR_NO_MORE_ITEMS) {
			return 0, err
		}

		handles := []windows.Handle{d.session.ReadWaitEvent(), d.closeEvent}
		status, waitErr := windows.WaitForMultipleObjects(handles, false, windows.INFINITE)
		if waitErr != nil {
			return 0, waitErr
		}
		if status == windows.WAIT_OBJECT_0+1 {
			return 0, io.ErrClosedPipe
		}
	}
}

func (d *device) Write(data []byte) (int, error) {
	if d.closed.Load() {
		return 0, io.ErrClosedPipe
	}
	packet, err := d.session.AllocateSendPacket(len(data))
	if err != nil {
		return 0, err
	}
	copy(packet, data)
	d.session.SendPacket(packet)
	return len(data), nil
}

func (d *device) Close() error {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		_ = windows.SetEvent(d.closeEvent)
		d.session.End()
		_ = windows.CloseHandle(d.closeEvent)
	})
	return nil
}
