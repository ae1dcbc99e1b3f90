package trafficstats

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Smiexh/vswitch/application/logging"
)

// Snapshot is a point-in-time copy of the counters.
// RX counts what arrived from the transport, TX what was sent to it.
type Snapshot struct {
	RXBytes   uint64
	RXPackets uint64
	TXBytes   uint64
	TXPackets uint64
	Dropped   uint64
}

func (s Snapshot) sub(prev Snapshot) Snapshot {
	return Snapshot{
		RXBytes:   s.RXBytes - prev.RXBytes,
		RXPackets: s.RXPackets - prev.RXPackets,
		TXBytes:   s.TXBytes - prev.TXBytes,
		TXPackets: s.TXPackets - prev.TXPackets,
		Dropped:   s.Dropped - prev.Dropped,
	}
}

func (s Snapshot) idle() bool {
	return s == Snapshot{}
}

// Collector is safe for concurrent use; every method is allocation-free.
type Collector struct {
	rxBytes   atomic.Uint64
	rxPackets atomic.Uint64
	txBytes   atomic.Uint64
	txPackets atomic.Uint64
	dropped   atomic.Uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) AddRX(bytes int) {
	if bytes <= 0 {
		return
	}
	c.rxBytes.Add(uint64(bytes))
	c.rxPackets.Add(1)
}

func (c *Collector) AddTX(bytes int) {
	if bytes <= 0 {
		return
	}
	c.txBytes.Add(uint64(bytes))
	c.txPackets.Add(1)
}

func (c *Collector) AddDropped() {
	c.dropped.Add(1)
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		RXBytes:   c.rxBytes.Load(),
		RXPackets: c.rxPackets.Load(),
		TXBytes:   c.txBytes.Load(),
		TXPackets: c.txPackets.Load(),
		Dropped:   c.dropped.Load(),
	}
}

// Reporter logs the counters at debug level on every tick with activity.
type Reporter struct {
	collector *Collector
	logger    logging.Logger
	interval  time.Duration
	last      Snapshot
}

func NewReporter(collector *Collector, logger logging.Logger, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Reporter{
		collector: collector,
		logger:    logger,
		interval:  interval,
	}
}

func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Report()
		}
	}
}

// Report logs activity since the previous call and reports whether there was any.
func (r *Reporter) Report() bool {
	now := r.collector.Snapshot()
	delta := now.sub(r.last)
	r.last = now
	if delta.idle() {
		return false
	}

	r.logger.Debugf("traffic: rx %s (%d pkts, %s), tx %s (%d pkts, %s), dropped %d; total rx %s tx %s",
		Bytes(delta.RXBytes), delta.RXPackets, Rate(delta.RXBytes, r.interval),
		Bytes(delta.TXBytes), delta.TXPackets, Rate(delta.TXBytes, r.interval),
		delta.Dropped, Bytes(now.RXBytes), Bytes(now.TXBytes))
	return true
}
