package ip

import "net/netip"

// HeaderParser extracts endpoint addresses from raw IPv4/IPv6 packets.
// The boolean result is false when the packet is too short or carries
// an unsupported version.
type HeaderParser interface {
	SourceAddress(packet []byte) (netip.Addr, bool)
	DestinationAddress(packet []byte) (netip.Addr, bool)
}
