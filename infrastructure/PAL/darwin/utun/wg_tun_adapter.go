//go:build darwin

package utun

import (
	"encoding/binary"
	"errors"
	"syscall"

	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/settings"
	wgtun "golang.zx2c4.com/wireguard/tun"
)

const uTunHeaderSize = 4

// WgTunAdapter wraps a wireguard/tun Device and uses pre-allocated read and
// write buffers. The first 4 bytes of every frame carry the utun
// address-family header; Read strips it, Write prepends it.
type WgTunAdapter struct {
	device      wgtun.Device
	readBuffer  []byte
	writeBuffer []byte
}

func NewWgTunAdapter(dev wgtun.Device) tun.Device {
	return &WgTunAdapter{
		device:      dev,
		readBuffer:  make([]byte, uTunHeaderSize+settings.ReceiveBufferSize),
		writeBuffer: make([]byte, uTunHeaderSize+settings.ReceiveBufferSize),
	}
}

// Read copies an IP packet from the utun device into p.
func (a *WgTunAdapter) Read(p []byte) (int, error) {
	bufs, sizes := [][]byte{a.readBuffer}, []int{0}

	if _, err := a.device.Read(bufs, sizes, uTunHeaderSize); err != nil {
		return 0, err
	}
	n := sizes[0]
	if n > len(p) {
		return 0, errors.New("destination slice too small")
	}
	copy(p, a.readBuffer[uTunHeaderSize:uTunHeaderSize+n])
	return n, nil
}

// Write prepends the utun header to p and hands it to the kernel.
func (a *WgTunAdapter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, errors.New("empty packet")
	}
	if len(p)+uTunHeaderSize > len(a.writeBuffer) {
		return 0, errors.New("packet exceeds max size")
	}

	var family uint32 = syscall.AF_INET
	if p[0]>>4 == 6 {
		family = syscall.AF_INET6
	}
	binary.BigEndian.PutUint32(a.writeBuffer[:uTunHeaderSize], family)
	copy(a.writeBuffer[uTunHeaderSize:], p)

	if _, err := a.device.Write([][]byte{a.writeBuffer[:len(p)+uTunHeaderSize]}, uTunHeaderSize); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (a *WgTunAdapter) Close() error { return a.device.Close() }
