package session_management

import (
	"net/netip"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Smiexh/vswitch/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	now atomic.Int64
}

func newTestClock(start int64) *testClock {
	c := &testClock{}
	c.now.Store(start)
	return c
}

func (c *testClock) NowMillis() int64 { return c.now.Load() }
func (c *testClock) Set(ms int64)     { c.now.Store(ms) }

var (
	endpointA = netip.MustParseAddrPort("192.0.2.1:5000")
	endpointB = netip.MustParseAddrPort("192.0.2.2:5000")
	vip       = netip.MustParseAddr("10.0.0.2")
)

func newTestTable(start int64) (*Table, *testClock) {
	clock := newTestClock(start)
	return NewTable(clock, logging.NewNopLogger()), clock
}

func sessionOf(t *testing.T, table *Table, endpoint netip.AddrPort) Session {
	t.Helper()
	for _, s := range table.Sessions() {
		if s.Endpoint == endpoint {
			return s
		}
	}
	t.Fatalf("no session for %v", endpoint)
	return Session{}
}

func TestTable_TouchLifecycle(t *testing.T) {
	table, clock := newTestTable(1000)

	assert.True(t, table.Touch(endpointA), "first touch creates")
	first := sessionOf(t, table, endpointA)
	assert.Equal(t, int64(1000), first.LastHeartbeat)
	assert.False(t, first.VirtualIP.IsValid())

	clock.Set(2500)
	assert.False(t, table.Touch(endpointA), "second touch updates")
	assert.Equal(t, int64(2500), sessionOf(t, table, endpointA).LastHeartbeat)
	assert.Equal(t, 1, table.Len())
}

func TestTable_TouchClampsZeroTimestamp(t *testing.T) {
	table, _ := newTestTable(0)
	table.Touch(endpointA)
	assert.Equal(t, int64(1), sessionOf(t, table, endpointA).LastHeartbeat)
}

type tickingClock struct {
	now atomic.Int64
}

func (c *tickingClock) NowMillis() int64 { return c.now.Add(1) }

func TestTable_ConcurrentTouchKeepsNewestTimestamp(t *testing.T) {
	clock := &tickingClock{}
	table := NewTable(clock, logging.NewNopLogger())

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				table.Touch(endpointA)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, clock.now.Load(), sessionOf(t, table, endpointA).LastHeartbeat)
}

func TestTable_ObserveTouchesAndRoutes(t *testing.T) {
	table, clock := newTestTable(100)

	assert.True(t, table.Observe(endpointA, vip), "first data creates the session")
	got, ok := table.LookupEndpoint(vip)
	require.True(t, ok)
	assert.Equal(t, endpointA, got)
	assert.Equal(t, vip, sessionOf(t, table, endpointA).VirtualIP)

	clock.Set(200)
	assert.False(t, table.Observe(endpointA, vip))
	assert.Equal(t, int64(200), sessionOf(t, table, endpointA).LastHeartbeat)

	assert.True(t, table.Observe(endpointB, vip))
	got, _ = table.LookupEndpoint(vip)
	assert.Equal(t, endpointB, got, "observed source migrates the route")
}

func TestTable_ObserveWithoutSource(t *testing.T) {
	table, _ := newTestTable(100)

	assert.True(t, table.Observe(endpointA, netip.Addr{}))
	assert.Equal(t, 1, table.Len())
	assert.False(t, sessionOf(t, table, endpointA).VirtualIP.IsValid())
	_, ok := table.LookupEndpoint(vip)
	assert.False(t, ok)
}

func TestTable_SetVirtualIP_UnknownEndpoint(t *testing.T) {
	table, _ := newTestTable(1)

	assert.False(t, table.SetVirtualIP(endpointA, vip))
	_, ok := table.LookupEndpoint(vip)
	assert.False(t, ok)
}

func TestTable_SetVirtualIP_InvalidAddr(t *testing.T) {
	table, _ := newTestTable(1)
	table.Touch(endpointA)
	assert.False(t, table.SetVirtualIP(endpointA, netip.Addr{}))
}

func TestTable_RouteConsistency_LastWriterWins(t *testing.T) {
	table, _ := newTestTable(1)
	table.Touch(endpointA)
	table.Touch(endpointB)

	require.True(t, table.SetVirtualIP(endpointA, vip))
	require.True(t, table.SetVirtualIP(endpointB, vip))

	got, ok := table.LookupEndpoint(vip)
	require.True(t, ok)
	assert.Equal(t, endpointB, got)

	assert.True(t, table.Remove(endpointA))
	got, ok = table.LookupEndpoint(vip)
	require.True(t, ok, "route claimed by B survives removal of A")
	assert.Equal(t, endpointB, got)
}

func TestTable_RemoveDropsOwnedRoute(t *testing.T) {
	table, _ := newTestTable(1)
	table.Touch(endpointA)
	table.SetVirtualIP(endpointA, vip)

	assert.True(t, table.Remove(endpointA))
	_, ok := table.LookupEndpoint(vip)
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Remove(endpointA), "second remove is a no-op")
}

func TestTable_VirtualIPChangeReleasesOldRoute(t *testing.T) {
	table, _ := newTestTable(1)
	other := netip.MustParseAddr("10.0.0.3")
	table.Touch(endpointA)
	table.SetVirtualIP(endpointA, vip)
	table.SetVirtualIP(endpointA, other)

	_, ok := table.LookupEndpoint(vip)
	assert.False(t, ok)
	got, ok := table.LookupEndpoint(other)
	require.True(t, ok)
	assert.Equal(t, endpointA, got)
	assert.Equal(t, other, sessionOf(t, table, endpointA).VirtualIP)
}

func TestTable_ReclaimAfterMigration(t *testing.T) {
	table, _ := newTestTable(1)
	table.Touch(endpointA)
	table.Touch(endpointB)
	table.SetVirtualIP(endpointA, vip)
	table.SetVirtualIP(endpointB, vip)
	table.SetVirtualIP(endpointA, vip)

	got, _ := table.LookupEndpoint(vip)
	assert.Equal(t, endpointA, got)
}

func TestTable_IPv4MappedLookup(t *testing.T) {
	table, _ := newTestTable(1)
	table.Touch(endpointA)
	table.SetVirtualIP(endpointA, netip.MustParseAddr("::ffff:10.0.0.2"))

	got, ok := table.LookupEndpoint(vip)
	require.True(t, ok)
	assert.Equal(t, endpointA, got)
}

func TestTable_SweepExpired(t *testing.T) {
	const timeout = 30 * time.Second
	const touchedAt = int64(5000)

	tests := []struct {
		name    string
		now     int64
		evicted bool
	}{
		{"just before window", touchedAt + timeout.Milliseconds() - 1, false},
		{"exactly at window", touchedAt + timeout.Milliseconds(), false},
		{"just after window", touchedAt + timeout.Milliseconds() + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, _ := newTestTable(touchedAt)
			table.Touch(endpointA)
			table.SetVirtualIP(endpointA, vip)

			expired := table.SweepExpired(tt.now, timeout)

			_, routed := table.LookupEndpoint(vip)
			if tt.evicted {
				assert.Equal(t, []netip.AddrPort{endpointA}, expired)
				assert.Equal(t, 0, table.Len())
				assert.False(t, routed)
			} else {
				assert.Empty(t, expired)
				assert.Equal(t, 1, table.Len())
				assert.True(t, routed)
			}
		})
	}
}

func TestTable_SweepSkipsNeverTouched(t *testing.T) {
	table, _ := newTestTable(1)
	table.sessions[endpointA] = &peerSession{}

	assert.Empty(t, table.SweepExpired(1_000_000, time.Second))
	assert.Equal(t, 1, table.Len())
}

func TestTable_SessionsIsCopy(t *testing.T) {
	table, _ := newTestTable(1)
	table.Touch(endpointA)

	snapshot := table.Sessions()
	snapshot[0].VirtualIP = vip

	assert.False(t, sessionOf(t, table, endpointA).VirtualIP.IsValid())
}

func TestTable_ConcurrentAccess_NoRace(t *testing.T) {
	table, clock := newTestTable(1)
	var wg sync.WaitGroup
	const workers = 8
	wg.Add(workers + 1)

	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			ep := netip.AddrPortFrom(netip.MustParseAddr("192.0.2.10"), uint16(6000+w))
			ip := netip.AddrFrom4([4]byte{10, 0, 1, byte(w)})
			for i := 0; i < 500; i++ {
				table.Touch(ep)
				table.SetVirtualIP(ep, ip)
				_, _ = table.LookupEndpoint(ip)
				if i%50 == 0 {
					table.Remove(ep)
				}
			}
		}(w)
	}
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			clock.Set(int64(i))
			table.SweepExpired(int64(i)+100_000, time.Second)
		}
	}()
	wg.Wait()

	for _, s := range table.Sessions() {
		if !s.VirtualIP.IsValid() {
			continue
		}
		if owner, ok := table.LookupEndpoint(s.VirtualIP); ok {
			assert.Equal(t, s.Endpoint, owner)
		}
	}
}
