package udp

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/Smiexh/vswitch/application/network/connection"
)

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Dialer opens connected UDP sockets towards one remote endpoint. Every
// Establish binds a new ephemeral local port.
type Dialer struct {
	remote netip.AddrPort
	dial   dialFunc
}

func NewUDPConnection(remote netip.AddrPort) connection.Connection {
	var d net.Dialer
	return &Dialer{
		remote: netip.AddrPortFrom(remote.Addr().Unmap(), remote.Port()),
		dial:   d.DialContext,
	}
}

func (d *Dialer) Establish(ctx context.Context) (connection.Transport, error) {
	network := "udp6"
	if d.remote.Addr().Is4() {
		network = "udp4"
	}
	conn, err := d.dial(ctx, network, d.remote.String())
	if err != nil {
		return nil, fmt.Errorf("failed to dial %v: %w", d.remote, err)
	}
	return conn, nil
}
