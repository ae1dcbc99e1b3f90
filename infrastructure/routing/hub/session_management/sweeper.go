package session_management

import (
	"context"
	"net/netip"
	"time"

	"github.com/Smiexh/vswitch/application/logging"
)

// Sweeper periodically evicts stale sessions. Evicted peers are not notified.
type Sweeper struct {
	table    *Table
	clock    Clock
	logger   logging.Logger
	interval time.Duration
	timeout  time.Duration
}

func NewSweeper(
	table *Table,
	clock Clock,
	logger logging.Logger,
	interval, timeout time.Duration,
) *Sweeper {
	return &Sweeper{
		table:    table,
		clock:    clock,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
	}
}

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep performs a single eviction pass.
func (s *Sweeper) Sweep() []netip.AddrPort {
	expired := s.table.SweepExpired(s.clock.NowMillis(), s.timeout)
	for _, endpoint := range expired {
		s.logger.Debugf("session %v expired", endpoint)
	}
	if len(expired) > 0 {
		s.logger.Printf("evicted %d stale session(s), %d remaining", len(expired), s.table.Len())
	}
	return expired
}
