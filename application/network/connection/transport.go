package connection

import (
	"context"
	"io"
	"net/netip"
)

// Transport is a connected datagram socket: every Write goes to the same peer
// and Read returns one datagram per call.
type Transport interface {
	io.ReadWriteCloser
}

// Connection establishes a Transport to a fixed remote endpoint. Each call
// yields a fresh socket, which is how a spoke re-targets after a failure.
type Connection interface {
	Establish(ctx context.Context) (Transport, error)
}

// PacketTransport is an unconnected datagram socket with explicit endpoints.
type PacketTransport interface {
	ReadFrom(buffer []byte) (int, netip.AddrPort, error)
	WriteTo(buffer []byte, endpoint netip.AddrPort) (int, error)
	Close() error
}

// Listener binds a PacketTransport to a local address.
type Listener interface {
	Listen() (PacketTransport, error)
}
