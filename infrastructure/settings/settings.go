package settings

import (
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/Smiexh/vswitch/domain/mode"
)

var (
	ErrMissingServer     = errors.New("hub address is required in spoke mode")
	ErrInvalidMTU        = fmt.Errorf("MTU must be in [%d, %d]", MinimumIPv4MTU, MaximumMTU)
	ErrInvalidTunName    = fmt.Errorf("interface name must be 1..%d bytes", MaxInterfaceNameLength)
	ErrInvalidListenAddr = errors.New("invalid listen address")
	ErrInvalidServerAddr = errors.New("invalid hub address")
)

// Settings is read once at startup and never re-read.
type Settings struct {
	Listen   string `toml:"listen"`
	Server   string `toml:"server"`
	TunName  string `toml:"tun_name"`
	MTU      int    `toml:"mtu"`
	LogLevel string `toml:"log_level"`
}

func Default() Settings {
	return Settings{
		Listen:   DefaultListen,
		TunName:  DefaultTunName,
		MTU:      DefaultEthernetMTU,
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks the fields the given mode consumes.
func (s Settings) Validate(m mode.Mode) error {
	if s.MTU < MinimumIPv4MTU || s.MTU > MaximumMTU {
		return fmt.Errorf("%w: got %d", ErrInvalidMTU, s.MTU)
	}
	if len(s.TunName) == 0 || len(s.TunName) > MaxInterfaceNameLength {
		return fmt.Errorf("%w: got %q", ErrInvalidTunName, s.TunName)
	}

	switch m {
	case mode.Hub:
		if _, err := s.ListenAddrPort(); err != nil {
			return err
		}
	case mode.Spoke:
		if s.Server == "" {
			return ErrMissingServer
		}
		if _, err := s.ServerAddrPort(); err != nil {
			return err
		}
	}
	return nil
}

// ListenAddrPort parses Listen as a literal ip:port.
func (s Settings) ListenAddrPort() (netip.AddrPort, error) {
	addr, err := netip.ParseAddrPort(s.Listen)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w %q: %v", ErrInvalidListenAddr, s.Listen, err)
	}
	return addr, nil
}

// ServerAddrPort parses Server, resolving a host name once if needed.
func (s Settings) ServerAddrPort() (netip.AddrPort, error) {
	if addr, err := netip.ParseAddrPort(s.Server); err == nil {
		return netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port()), nil
	}
	udpAddr, err := net.ResolveUDPAddr("udp", s.Server)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w %q: %v", ErrInvalidServerAddr, s.Server, err)
	}
	addr := udpAddr.AddrPort()
	if !addr.Addr().IsValid() || addr.Port() == 0 {
		return netip.AddrPort{}, fmt.Errorf("%w %q: host and port are required", ErrInvalidServerAddr, s.Server)
	}
	return netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port()), nil
}
