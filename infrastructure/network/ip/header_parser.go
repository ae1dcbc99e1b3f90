package ip

import (
	"net/netip"

	appip "github.com/Smiexh/vswitch/application/network/ip"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Compile-time interface check.
var _ appip.HeaderParser = (*HeaderParser)(nil)

const (
	ipv4SrcOffset = 12
	ipv4DstOffset = 16
	ipv6SrcOffset = 8
	ipv6DstOffset = 24
)

// HeaderParser reads addresses at fixed offsets. IHL and options are not
// inspected: any IPv4 buffer of at least ipv4.HeaderLen bytes is accepted.
type HeaderParser struct{}

func NewHeaderParser() appip.HeaderParser { return &HeaderParser{} }

// SourceAddress returns header[12:16] for IPv4 and header[8:24] for IPv6.
func (HeaderParser) SourceAddress(packet []byte) (netip.Addr, bool) {
	return addressAt(packet, ipv4SrcOffset, ipv6SrcOffset)
}

// DestinationAddress returns header[16:20] for IPv4 and header[24:40] for IPv6.
func (HeaderParser) DestinationAddress(packet []byte) (netip.Addr, bool) {
	return addressAt(packet, ipv4DstOffset, ipv6DstOffset)
}

func addressAt(packet []byte, v4Offset, v6Offset int) (netip.Addr, bool) {
	switch VersionOf(packet) {
	case V4:
		if len(packet) < ipv4.HeaderLen {
			return netip.Addr{}, false
		}
		return netip.AddrFrom4([4]byte(packet[v4Offset : v4Offset+4])), true
	case V6:
		if len(packet) < ipv6.HeaderLen {
			return netip.Addr{}, false
		}
		return netip.AddrFrom16([16]byte(packet[v6Offset : v6Offset+16])), true
	default:
		return netip.Addr{}, false
	}
}
