package hub

import (
	"context"
	"io"
	"net"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/domain/network/message"
	"github.com/Smiexh/vswitch/infrastructure/logging"
	"github.com/Smiexh/vswitch/infrastructure/network/ip"
	"github.com/Smiexh/vswitch/infrastructure/network/udp"
	"github.com/Smiexh/vswitch/infrastructure/routing"
	"github.com/Smiexh/vswitch/infrastructure/routing/hub/session_management"
	"github.com/Smiexh/vswitch/infrastructure/settings"
	"github.com/Smiexh/vswitch/infrastructure/telemetry/trafficstats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDevice is an in-memory TUN: packets pushed to in are read by the hub,
// packets the hub writes show up on out.
type memDevice struct {
	in     chan []byte
	out    chan []byte
	closed chan struct{}
	once   sync.Once
}

func newMemDevice() *memDevice {
	return &memDevice{
		in:     make(chan []byte, 16),
		out:    make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (d *memDevice) Read(p []byte) (int, error) {
	select {
	case packet := <-d.in:
		return copy(p, packet), nil
	case <-d.closed:
		return 0, io.ErrClosedPipe
	}
}

func (d *memDevice) Write(p []byte) (int, error) {
	select {
	case d.out <- append([]byte(nil), p...):
		return len(p), nil
	case <-d.closed:
		return 0, io.ErrClosedPipe
	}
}

func (d *memDevice) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}

func readFrame(t *testing.T, conn *net.UDPConn) message.Message {
	t.Helper()
	buf := make([]byte, settings.ReceiveBufferSize)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, err := conn.Read(buf)
	require.NoError(t, err)
	m, err := message.Decode(buf[:n])
	require.NoError(t, err)
	return m
}

func TestHub_EndToEndOverLoopback(t *testing.T) {
	transport, err := udp.NewListener(netip.MustParseAddrPort("127.0.0.1:0")).Listen()
	require.NoError(t, err)
	hubAddr := transport.(*udp.Socket).LocalAddrPort()

	device := newMemDevice()
	nop := logging.NewNopLogger()
	clock := session_management.NewMonotonicClock()
	table := session_management.NewTable(clock, nop)
	stats := trafficstats.NewCollector()

	router := routing.NewRouter(func(ctx context.Context) tun.Worker {
		return NewWorker(ctx, Dependencies{
			Device:    device,
			Transport: transport,
			Table:     table,
			Parser:    ip.NewHeaderParser(),
			Logger:    nop,
			Stats:     stats,
		})
	},
		session_management.NewSweeper(table, clock, nop, settings.SweepInterval, settings.LivenessTimeout),
		routing.CloseOnDone(transport, device),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- router.RouteTraffic(ctx) }()

	spoke, err := net.DialUDP("udp", nil, net.UDPAddrFromAddrPort(hubAddr))
	require.NoError(t, err)
	defer func() { _ = spoke.Close() }()

	// Connect is acknowledged with Connect.
	_, err = spoke.Write(message.Encode(message.NewConnect()))
	require.NoError(t, err)
	assert.Equal(t, message.Connect, readFrame(t, spoke).Kind)

	// Data from the spoke reaches the interface and teaches the hub 10.0.0.2.
	outbound := ipv4Packet(t, "10.0.0.2", "10.0.0.9")
	_, err = spoke.Write(message.Encode(message.NewData(outbound)))
	require.NoError(t, err)
	select {
	case got := <-device.out:
		assert.Equal(t, outbound, got)
	case <-time.After(2 * time.Second):
		t.Fatal("payload was not written to the interface")
	}
	require.Eventually(t, func() bool {
		_, ok := table.LookupEndpoint(vipA)
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	// Interface traffic for 10.0.0.2 is relayed to the spoke.
	inbound := ipv4Packet(t, "10.0.0.9", "10.0.0.2")
	device.in <- inbound
	m := readFrame(t, spoke)
	assert.Equal(t, message.Data, m.Kind)
	assert.Equal(t, inbound, m.Payload)

	// Unrouted destinations are dropped.
	device.in <- ipv4Packet(t, "10.0.0.9", "10.0.0.77")
	require.Eventually(t, func() bool {
		return stats.Snapshot().Dropped == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("hub did not stop after cancel")
	}
}
