//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"runtime"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/tun"
)

var ErrUnsupportedPlatform = errors.New("TUN devices are not supported on " + runtime.GOOS)

type unsupportedManager struct{}

func NewTunManager(string, int, logging.Logger) tun.Manager {
	return unsupportedManager{}
}

func (unsupportedManager) CreateDevice() (tun.Device, error) { return nil, ErrUnsupportedPlatform }
func (unsupportedManager) DisposeDevices() error             { return nil }
