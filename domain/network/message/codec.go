package message

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is kind(1) + payload length(4).
	HeaderSize = 5
	// MaxDatagramSize bounds a single receive; larger frames arrive truncated and fail decoding.
	MaxDatagramSize = 4096
)

// Encode serializes m into a freshly allocated frame of HeaderSize+len(m.Payload) bytes.
func Encode(m Message) []byte {
	buf := make([]byte, HeaderSize+len(m.Payload))
	EncodeTo(buf, m)
	return buf
}

// EncodeTo writes m into dst, which must hold at least HeaderSize+len(m.Payload) bytes,
// and returns the number of bytes written.
func EncodeTo(dst []byte, m Message) int {
	dst[0] = byte(m.Kind)
	binary.BigEndian.PutUint32(dst[1:HeaderSize], uint32(len(m.Payload)))
	return HeaderSize + copy(dst[HeaderSize:], m.Payload)
}

// Decode parses one frame from data. Trailing bytes after the declared payload are ignored.
// The returned payload is a copy, so data may be reused by the caller.
func Decode(data []byte) (Message, error) {
	m, err := DecodeView(data)
	if err != nil {
		return Message{}, err
	}
	if m.Payload != nil {
		m.Payload = append([]byte(nil), m.Payload...)
	}
	return m, nil
}

// DecodeView is Decode without the payload copy: the payload aliases data.
func DecodeView(data []byte) (Message, error) {
	if len(data) < HeaderSize {
		return Message{}, fmt.Errorf("%w: got %d bytes, need %d", ErrShortMessage, len(data), HeaderSize)
	}

	kind := Kind(data[0])
	if !kind.Valid() {
		return Message{}, fmt.Errorf("%w: 0x%02x", ErrUnknownKind, data[0])
	}

	payloadLen := binary.BigEndian.Uint32(data[1:HeaderSize])
	remaining := uint64(len(data) - HeaderSize)
	if uint64(payloadLen) > remaining {
		return Message{}, fmt.Errorf("%w: declared %d bytes, got %d", ErrIncompletePayload, payloadLen, remaining)
	}

	m := Message{Kind: kind}
	if payloadLen > 0 {
		m.Payload = data[HeaderSize : HeaderSize+int(payloadLen)]
	}
	return m, nil
}

func (m Message) MarshalBinary() ([]byte, error) {
	return Encode(m), nil
}

func (m *Message) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}
