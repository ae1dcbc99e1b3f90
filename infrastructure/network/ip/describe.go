package ip

import (
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Describe renders a one-line summary of a packet for trace logging.
func Describe(packet []byte) string {
	var first gopacket.LayerType
	switch VersionOf(packet) {
	case V4:
		first = layers.LayerTypeIPv4
	case V6:
		first = layers.LayerTypeIPv6
	default:
		return fmt.Sprintf("non-ip packet (%d bytes)", len(packet))
	}

	p := gopacket.NewPacket(packet, first, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	var proto string
	var src, dst string
	if l, ok := p.Layer(layers.LayerTypeIPv4).(*layers.IPv4); ok {
		src, dst, proto = l.SrcIP.String(), l.DstIP.String(), l.Protocol.String()
	} else if l, ok := p.Layer(layers.LayerTypeIPv6).(*layers.IPv6); ok {
		src, dst, proto = l.SrcIP.String(), l.DstIP.String(), l.NextHeader.String()
	} else {
		return fmt.Sprintf("truncated ip packet (%d bytes)", len(packet))
	}
	return fmt.Sprintf("%s -> %s %s (%d bytes)", src, dst, proto, len(packet))
}

// Summary defers Describe until the value is actually formatted, so a
// suppressed log line costs no decoding. It aliases the packet.
type Summary []byte

func (s Summary) String() string { return Describe(s) }
