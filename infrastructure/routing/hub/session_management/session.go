package session_management

import "net/netip"

// Session is a read-only snapshot of one peer session.
type Session struct {
	Endpoint      netip.AddrPort
	LastHeartbeat int64
	// VirtualIP is invalid until the first Data message from the peer.
	VirtualIP netip.Addr
}

type peerSession struct {
	lastHeartbeat int64
	virtualIP     netip.Addr
}
