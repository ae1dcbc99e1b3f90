package udp

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/Smiexh/vswitch/application/network/connection"
)

type Listener struct {
	addrPort netip.AddrPort
}

func NewListener(addrPort netip.AddrPort) connection.Listener {
	return &Listener{addrPort: addrPort}
}

func (l *Listener) Listen() (connection.PacketTransport, error) {
	conn, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(l.addrPort))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %v: %w", l.addrPort, err)
	}
	return &Socket{conn: conn}, nil
}

// Socket is a bound UDP socket addressed per datagram. Endpoints are
// unmapped so an IPv4 peer on a dual-stack socket keeps one identity.
type Socket struct {
	conn *net.UDPConn
}

func (s *Socket) ReadFrom(buffer []byte) (int, netip.AddrPort, error) {
	n, addr, err := s.conn.ReadFromUDPAddrPort(buffer)
	if err != nil {
		return n, netip.AddrPort{}, err
	}
	return n, netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port()), nil
}

func (s *Socket) WriteTo(buffer []byte, endpoint netip.AddrPort) (int, error) {
	return s.conn.WriteToUDPAddrPort(buffer, endpoint)
}

func (s *Socket) LocalAddrPort() netip.AddrPort {
	addr := s.conn.LocalAddr().(*net.UDPAddr).AddrPort()
	return netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port())
}

func (s *Socket) Close() error {
	return s.conn.Close()
}
