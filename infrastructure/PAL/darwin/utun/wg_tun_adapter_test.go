//go:build darwin

package utun

import (
	"encoding/binary"
	"os"
	"syscall"
	"testing"

	wgtun "golang.zx2c4.com/wireguard/tun"
)

type fakeWgDevice struct {
	toRead  []byte
	written []byte
	offset  int
}

func (f *fakeWgDevice) File() *os.File { return nil }
func (f *fakeWgDevice) Read(bufs [][]byte, sizes []int, offset int) (int, error) {
	n := copy(bufs[0][offset:], f.toRead)
	sizes[0] = n
	return 1, nil
}
func (f *fakeWgDevice) Write(bufs [][]byte, offset int) (int, error) {
	f.written = append([]byte(nil), bufs[0]...)
	f.offset = offset
	return 1, nil
}
func (f *fakeWgDevice) MTU() (int, error)          { return 1500, nil }
func (f *fakeWgDevice) Name() (string, error)      { return "utun9", nil }
func (f *fakeWgDevice) Events() <-chan wgtun.Event { return nil }
func (f *fakeWgDevice) Close() error               { return nil }
func (f *fakeWgDevice) BatchSize() int             { return 1 }

func TestWgTunAdapter_ReadStripsHeader(t *testing.T) {
	dev := &fakeWgDevice{toRead: []byte{0x45, 1, 2, 3}}
	a := NewWgTunAdapter(dev)

	buf := make([]byte, 16)
	n, err := a.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 4 || buf[0] != 0x45 || buf[3] != 3 {
		t.Fatalf("unexpected packet %v", buf[:n])
	}
}

func TestWgTunAdapter_WritePrependsFamily(t *testing.T) {
	dev := &fakeWgDevice{}
	a := NewWgTunAdapter(dev)

	if _, err := a.Write([]byte{0x60, 0, 0, 0}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if dev.offset != 4 {
		t.Fatalf("offset = %d, want 4", dev.offset)
	}
	if got := binary.BigEndian.Uint32(dev.written[:4]); got != syscall.AF_INET6 {
		t.Fatalf("family = %d, want AF_INET6", got)
	}
	if _, err := a.Write(nil); err == nil {
		t.Fatal("expected error for empty packet")
	}
}
