//go:build linux

// Package syscall opens TUN handles through the /dev/net/tun clone device.
package syscall

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const cloneDevice = "/dev/net/tun"

// OpenTun attaches a /dev/net/tun handle to the layer-3 interface name,
// creating the interface when it does not exist yet. It returns the handle
// and the name the kernel actually assigned.
func OpenTun(name string) (*os.File, string, error) {
	if len(name) >= unix.IFNAMSIZ {
		return nil, "", fmt.Errorf("interface name %q is longer than %d bytes", name, unix.IFNAMSIZ-1)
	}

	fd, err := unix.Open(cloneDevice, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", cloneDevice, err)
	}

	req, err := unix.NewIfreq(name)
	if err != nil {
		_ = unix.Close(fd)
		return nil, "", err
	}
	req.SetUint16(unix.IFF_TUN | unix.IFF_NO_PI)
	if err := unix.IoctlIfreq(fd, unix.TUNSETIFF, req); err != nil {
		_ = unix.Close(fd)
		return nil, "", fmt.Errorf("TUNSETIFF %s: %w", name, err)
	}

	assigned, err := interfaceName(fd)
	if err != nil {
		_ = unix.Close(fd)
		return nil, "", fmt.Errorf("TUNGETIFF %s: %w", name, err)
	}

	return os.NewFile(uintptr(fd), cloneDevice), assigned, nil
}

func interfaceName(fd int) (string, error) {
	req, err := unix.NewIfreq("")
	if err != nil {
		return "", err
	}
	if err := unix.IoctlIfreq(fd, unix.TUNGETIFF, req); err != nil {
		return "", err
	}
	return req.Name(), nil
}
