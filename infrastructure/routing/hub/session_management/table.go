package session_management

import (
	"net/netip"
	"sync"
	"time"

	"github.com/Smiexh/vswitch/application/logging"
)

// Table holds the session table and the route table behind a single mutex.
// Every exported method is one critical section, so a session and the route
// it owns are never observed half-updated.
type Table struct {
	mu       sync.Mutex
	clock    Clock
	logger   logging.Logger
	sessions map[netip.AddrPort]*peerSession
	routes   map[netip.Addr]netip.AddrPort
}

func NewTable(clock Clock, logger logging.Logger) *Table {
	return &Table{
		clock:    clock,
		logger:   logger,
		sessions: make(map[netip.AddrPort]*peerSession),
		routes:   make(map[netip.Addr]netip.AddrPort),
	}
}

// Touch refreshes the liveness of endpoint, creating the session if needed.
// It reports whether the session was newly created.
func (t *Table) Touch(endpoint netip.AddrPort) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.touchLocked(endpoint)
}

// Observe records Data from endpoint: the session is touched and, when src
// is valid, src becomes its virtual IP within the same critical section.
// It reports whether the session was newly created.
func (t *Table) Observe(endpoint netip.AddrPort, src netip.Addr) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	created := t.touchLocked(endpoint)
	if src.IsValid() {
		t.setVirtualIPLocked(endpoint, src.Unmap())
	}
	return created
}

func (t *Table) touchLocked(endpoint netip.AddrPort) bool {
	now := t.clock.NowMillis()
	if now < 1 {
		// zero is reserved for "never touched"
		now = 1
	}
	if s, ok := t.sessions[endpoint]; ok {
		s.lastHeartbeat = now
		return false
	}
	t.sessions[endpoint] = &peerSession{lastHeartbeat: now}
	return true
}

// SetVirtualIP binds ip to endpoint, overwriting any previous owner of ip.
// It returns false when endpoint has no session or ip is invalid; no route
// is created then.
func (t *Table) SetVirtualIP(endpoint netip.AddrPort, ip netip.Addr) bool {
	if !ip.IsValid() {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.setVirtualIPLocked(endpoint, ip.Unmap())
}

func (t *Table) setVirtualIPLocked(endpoint netip.AddrPort, ip netip.Addr) bool {
	s, ok := t.sessions[endpoint]
	if !ok {
		return false
	}

	owner, routed := t.routes[ip]
	if s.virtualIP == ip && routed && owner == endpoint {
		return true
	}

	if s.virtualIP.IsValid() && s.virtualIP != ip {
		if prev, ok := t.routes[s.virtualIP]; ok && prev == endpoint {
			delete(t.routes, s.virtualIP)
		}
		t.logger.Printf("%v changed virtual IP from %v to %v", endpoint, s.virtualIP, ip)
	}

	if routed && owner != endpoint {
		t.logger.Printf("%v moved from %v to %v", ip, owner, endpoint)
	}

	s.virtualIP = ip
	t.routes[ip] = endpoint
	return true
}

// Remove deletes the session of endpoint. Its route goes too, unless another
// endpoint has claimed the virtual IP since.
func (t *Table) Remove(endpoint netip.AddrPort) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeLocked(endpoint)
}

func (t *Table) removeLocked(endpoint netip.AddrPort) bool {
	s, ok := t.sessions[endpoint]
	if !ok {
		return false
	}
	delete(t.sessions, endpoint)
	if s.virtualIP.IsValid() {
		if owner, ok := t.routes[s.virtualIP]; ok && owner == endpoint {
			delete(t.routes, s.virtualIP)
		}
	}
	return true
}

func (t *Table) LookupEndpoint(ip netip.Addr) (netip.AddrPort, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	endpoint, ok := t.routes[ip.Unmap()]
	return endpoint, ok
}

// SweepExpired removes sessions whose last activity is more than timeout
// before now and returns their endpoints. Sessions never touched are kept.
func (t *Table) SweepExpired(now int64, timeout time.Duration) []netip.AddrPort {
	limit := timeout.Milliseconds()

	t.mu.Lock()
	defer t.mu.Unlock()
	var expired []netip.AddrPort
	for endpoint, s := range t.sessions {
		if s.lastHeartbeat == 0 {
			continue
		}
		if now-s.lastHeartbeat > limit {
			expired = append(expired, endpoint)
		}
	}
	for _, endpoint := range expired {
		t.removeLocked(endpoint)
	}
	return expired
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Sessions returns a snapshot of all sessions in no particular order.
func (t *Table) Sessions() []Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Session, 0, len(t.sessions))
	for endpoint, s := range t.sessions {
		out = append(out, Session{
			Endpoint:      endpoint,
			LastHeartbeat: s.lastHeartbeat,
			VirtualIP:     s.virtualIP,
		})
	}
	return out
}
