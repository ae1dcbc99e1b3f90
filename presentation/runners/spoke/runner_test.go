package spoke

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Smiexh/vswitch/application/network/connection"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/domain/network/message"
	"github.com/Smiexh/vswitch/infrastructure/logging"
	"github.com/Smiexh/vswitch/infrastructure/settings"
)

type blockingDevice struct {
	closed chan struct{}
	once   sync.Once
}

func newBlockingDevice() *blockingDevice {
	return &blockingDevice{closed: make(chan struct{})}
}

func (d *blockingDevice) Read([]byte) (int, error) {
	<-d.closed
	return 0, io.ErrClosedPipe
}

func (d *blockingDevice) Write(p []byte) (int, error) { return len(p), nil }

func (d *blockingDevice) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}

type testTunManager struct {
	device   *blockingDevice
	disposed atomic.Int32
}

func (m *testTunManager) CreateDevice() (tun.Device, error) { return m.device, nil }

func (m *testTunManager) DisposeDevices() error {
	m.disposed.Add(1)
	return nil
}

// hubTransport records what the spoke sends and replays queued hub frames.
type hubTransport struct {
	in     chan []byte
	closed chan struct{}
	once   sync.Once
	mu     sync.Mutex
	sent   []message.Kind
}

func newHubTransport() *hubTransport {
	return &hubTransport{in: make(chan []byte, 4), closed: make(chan struct{})}
}

func (h *hubTransport) Read(p []byte) (int, error) {
	select {
	case frame := <-h.in:
		return copy(p, frame), nil
	case <-h.closed:
		return 0, net.ErrClosed
	}
}

func (h *hubTransport) Write(p []byte) (int, error) {
	m, err := message.Decode(p)
	if err == nil {
		h.mu.Lock()
		h.sent = append(h.sent, m.Kind)
		h.mu.Unlock()
	}
	return len(p), nil
}

func (h *hubTransport) Close() error {
	h.once.Do(func() { close(h.closed) })
	return nil
}

func (h *hubTransport) Sent() []message.Kind {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]message.Kind(nil), h.sent...)
}

type testConnection struct {
	transport *hubTransport
	err       error
}

func (c *testConnection) Establish(context.Context) (connection.Transport, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.transport, nil
}

func spokeSettings() settings.Settings {
	s := settings.Default()
	s.Server = "127.0.0.1:4789"
	return s
}

func runWithTimeout(t *testing.T, ctx context.Context, runner *Runner) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()
	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("runner did not stop")
		return nil
	}
}

func TestRunner_CancelSendsDisconnect(t *testing.T) {
	mgr := &testTunManager{device: newBlockingDevice()}
	hub := newHubTransport()
	runner := NewRunner(NewDependencies(spokeSettings(), mgr, &testConnection{transport: hub}, logging.NewNopLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	if err := runWithTimeout(t, ctx, runner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent := hub.Sent()
	if len(sent) != 2 || sent[0] != message.Connect || sent[1] != message.Disconnect {
		t.Fatalf("expected Connect then Disconnect, got %v", sent)
	}
	if got := mgr.disposed.Load(); got != 2 {
		t.Fatalf("expected preflight and shutdown dispose, got %d", got)
	}
}

func TestRunner_HubDisconnectEndsRun(t *testing.T) {
	mgr := &testTunManager{device: newBlockingDevice()}
	hub := newHubTransport()
	hub.in <- message.Encode(message.NewConnect())
	hub.in <- message.Encode(message.NewDisconnect())
	runner := NewRunner(NewDependencies(spokeSettings(), mgr, &testConnection{transport: hub}, logging.NewNopLogger()))

	if err := runWithTimeout(t, context.Background(), runner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-mgr.device.closed:
	default:
		t.Fatal("device must be closed after the hub disconnects")
	}
}

func TestRunner_InitialConnectFailure(t *testing.T) {
	mgr := &testTunManager{device: newBlockingDevice()}
	dialErr := errors.New("network is unreachable")
	runner := NewRunner(NewDependencies(spokeSettings(), mgr, &testConnection{err: dialErr}, logging.NewNopLogger()))

	err := runWithTimeout(t, context.Background(), runner)
	if !errors.Is(err, dialErr) {
		t.Fatalf("expected dial error, got %v", err)
	}
	select {
	case <-mgr.device.closed:
	default:
		t.Fatal("device must be released")
	}
}
