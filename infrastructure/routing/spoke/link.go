package spoke

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Smiexh/vswitch/application/network/connection"
	"github.com/Smiexh/vswitch/domain/network/message"
)

var (
	ErrLinkDown   = errors.New("link to hub is not established")
	ErrLinkClosed = errors.New("link to hub is closed")
)

var (
	connectFrame    = message.Encode(message.NewConnect())
	heartbeatFrame  = message.Encode(message.NewHeartbeat())
	disconnectFrame = message.Encode(message.NewDisconnect())
)

// Link is the spoke's current transport to the hub. Join swaps in a fresh
// transport, and senders always use whichever one is current.
type Link struct {
	connection connection.Connection

	mu        sync.RWMutex
	transport connection.Transport
	closed    bool
}

func NewLink(connection connection.Connection) *Link {
	return &Link{connection: connection}
}

// Join establishes a new transport to the hub, replaces the current one and
// announces the spoke with Connect. The previous transport is closed.
func (l *Link) Join(ctx context.Context) error {
	transport, err := l.connection.Establish(ctx)
	if err != nil {
		return fmt.Errorf("failed to establish transport: %w", err)
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		_ = transport.Close()
		return ErrLinkClosed
	}
	previous := l.transport
	l.transport = transport
	l.mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}

	if _, err := transport.Write(connectFrame); err != nil {
		return fmt.Errorf("failed to send connect: %w", err)
	}
	return nil
}

func (l *Link) current() (connection.Transport, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrLinkClosed
	}
	if l.transport == nil {
		return nil, ErrLinkDown
	}
	return l.transport, nil
}

// Send writes one frame to the hub.
func (l *Link) Send(frame []byte) error {
	transport, err := l.current()
	if err != nil {
		return err
	}
	_, err = transport.Write(frame)
	return err
}

// Receive reads one datagram from the hub.
func (l *Link) Receive(buffer []byte) (int, error) {
	transport, err := l.current()
	if err != nil {
		return 0, err
	}
	return transport.Read(buffer)
}

// Close tells the hub the spoke is leaving, best effort, and closes the
// transport. Pending Receive calls return with an error.
func (l *Link) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	transport := l.transport
	l.transport = nil
	l.mu.Unlock()

	if transport == nil {
		return nil
	}
	_, _ = transport.Write(disconnectFrame)
	return transport.Close()
}
