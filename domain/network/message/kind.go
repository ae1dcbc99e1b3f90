package message

import "fmt"

// Kind is the first byte of every frame on the wire.
type Kind uint8

const (
	// Connect is sent by a spoke to join a hub and echoed back by the hub as acknowledgement.
	Connect Kind = 0x01
	// Data carries one raw IP packet.
	Data Kind = 0x02
	// Heartbeat keeps a spoke's session alive; the hub echoes it.
	Heartbeat Kind = 0x03
	// Disconnect ends a session.
	Disconnect Kind = 0x04
)

func (k Kind) Valid() bool {
	return k >= Connect && k <= Disconnect
}

func (k Kind) String() string {
	switch k {
	case Connect:
		return "Connect"
	case Data:
		return "Data"
	case Heartbeat:
		return "Heartbeat"
	case Disconnect:
		return "Disconnect"
	default:
		return fmt.Sprintf("Kind(0x%02x)", uint8(k))
	}
}
