package message

// Message is the unit of wire communication between a hub and its spokes.
//
// Frame layout:
//
//	[ 0 ][ 1 ........ 4 ][ 5 ........ 5+len ]
//	|kind| payload length|      payload      |
//	      (big-endian u32)
type Message struct {
	Kind    Kind
	Payload []byte
}

func NewConnect() Message { return Message{Kind: Connect} }

func NewHeartbeat() Message { return Message{Kind: Heartbeat} }

func NewDisconnect() Message { return Message{Kind: Disconnect} }

// NewData wraps packet without copying it.
func NewData(packet []byte) Message {
	return Message{Kind: Data, Payload: packet}
}
