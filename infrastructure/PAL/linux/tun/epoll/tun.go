//go:build linux

package epoll

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"runtime"
	"sync/atomic"

	application "github.com/Smiexh/vswitch/application/network/tun"
	"golang.org/x/sys/unix"
)

// poller waits for one direction of readiness on the TUN fd. Read and write
// each own a poller, so the two directions never share epoll state.
type poller struct {
	epollFd int
	tunFd   int
	wakeFd  int
	mask    uint32
	events  [2]unix.EpollEvent
}

func newPoller(tunFd, wakeFd int, mask uint32) (*poller, error) {
	ep, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	p := &poller{epollFd: ep, tunFd: tunFd, wakeFd: wakeFd, mask: mask}

	tunEv := unix.EpollEvent{Events: mask | unix.EPOLLERR | unix.EPOLLHUP, Fd: int32(tunFd)}
	if err := unix.EpollCtl(ep, unix.EPOLL_CTL_ADD, tunFd, &tunEv); err != nil {
		_ = unix.Close(ep)
		return nil, err
	}
	wakeEv := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(wakeFd)}
	if err := unix.EpollCtl(ep, unix.EPOLL_CTL_ADD, wakeFd, &wakeEv); err != nil {
		_ = unix.Close(ep)
		return nil, err
	}
	return p, nil
}

// wait blocks until the TUN fd is ready in this poller's direction.
// It returns io.ErrClosedPipe once the device is closed and io.EOF on HUP/ERR.
func (p *poller) wait() error {
	for {
		n, err := unix.EpollWait(p.epollFd, p.events[:], -1)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if errors.Is(err, unix.EBADF) {
			return io.ErrClosedPipe
		}
		if err != nil {
			return err
		}
		ready := false
		for i := 0; i < n; i++ {
			ev := p.events[i]
			if int(ev.Fd) == p.wakeFd {
				return io.ErrClosedPipe
			}
			if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
				return io.EOF
			}
			if ev.Events&p.mask != 0 {
				ready = true
			}
		}
		if ready {
			return nil
		}
	}
}

func (p *poller) close() error { return unix.Close(p.epollFd) }

// tun wraps a TUN file descriptor and performs Read/Write via epoll(7)
// instead of blocking read(2)/write(2) on the fd. Close wakes any pending
// Read or Write through an eventfd.
type tun struct {
	fd     int // duplicated and owned by this wrapper
	wakeFd int
	reader *poller
	writer *poller
	closed atomic.Bool
}

// NewTUN takes ownership of f on success: it will close f before returning.
// On error, ownership remains with the caller (f is not closed).
func NewTUN(f *os.File) (application.Device, error) {
	if f == nil {
		return nil, errors.New("nil file")
	}
	orig := int(f.Fd())

	dup, err := unix.Dup(orig)
	if err != nil {
		return nil, err
	}
	if err := unix.SetNonblock(dup, true); err != nil {
		_ = unix.Close(dup)
		return nil, err
	}
	if _, err := unix.FcntlInt(uintptr(dup), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
		_ = unix.Close(dup)
		return nil, err
	}

	wake, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		_ = unix.Close(dup)
		return nil, err
	}

	reader, err := newPoller(dup, wake, unix.EPOLLIN)
	if err != nil {
		_ = unix.Close(wake)
		_ = unix.Close(dup)
		return nil, err
	}
	writer, err := newPoller(dup, wake, unix.EPOLLOUT)
	if err != nil {
		_ = reader.close()
		_ = unix.Close(wake)
		_ = unix.Close(dup)
		return nil, err
	}

	_ = f.Close()
	runtime.KeepAlive(f)
	return &tun{fd: dup, wakeFd: wake, reader: reader, writer: writer}, nil
}

// Read reads a single TUN packet (or less if buffer is smaller).
// On EAGAIN it waits for EPOLLIN.
func (w *tun) Read(p []byte) (int, error) {
	for {
		if w.closed.Load() {
			return 0, io.ErrClosedPipe
		}
		n, err := unix.Read(w.fd, p)
		if err == nil {
			return n, nil
		}
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			if waitErr := w.reader.wait(); waitErr != nil {
				return 0, waitErr
			}
		case errors.Is(err, unix.EBADF):
			return 0, io.ErrClosedPipe
		default:
			return 0, err
		}
	}
}

// Write writes one TUN packet. On EAGAIN it waits for EPOLLOUT.
func (w *tun) Write(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if w.closed.Load() {
			return total, io.ErrClosedPipe
		}
		n, err := unix.Write(w.fd, p[total:])
		if err == nil {
			if n == 0 {
				if waitErr := w.writer.wait(); waitErr != nil {
					return total, waitErr
				}
				continue
			}
			total += n
			continue
		}
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			if waitErr := w.writer.wait(); waitErr != nil {
				return total, waitErr
			}
		case errors.Is(err, unix.EBADF):
			return total, io.ErrClosedPipe
		default:
			return total, err
		}
	}
	return total, nil
}

func (w *tun) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	var one [8]byte
	binary.NativeEndian.PutUint64(one[:], 1)
	_, _ = unix.Write(w.wakeFd, one[:])

	return errors.Join(
		w.reader.close(),
		w.writer.close(),
		unix.Close(w.fd),
		unix.Close(w.wakeFd),
	)
}

// Fd returns the underlying fd (owned by this wrapper). Use with care.
func (w *tun) Fd() uintptr { return uintptr(w.fd) }
