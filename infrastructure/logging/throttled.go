package logging

import (
	"github.com/Smiexh/vswitch/application/logging"
	"golang.org/x/time/rate"
)

// Throttled wraps a Logger and drops warn, debug and trace lines once the
// limiter is exhausted. Info and error lines always pass through.
type Throttled struct {
	logging.Logger
	limiter *rate.Limiter
}

func NewThrottled(l logging.Logger, perSecond float64, burst int) *Throttled {
	return &Throttled{
		Logger:  l,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (t *Throttled) Warnf(format string, v ...any) {
	if t.limiter.Allow() {
		t.Logger.Warnf(format, v...)
	}
}

func (t *Throttled) Debugf(format string, v ...any) {
	if t.limiter.Allow() {
		t.Logger.Debugf(format, v...)
	}
}

func (t *Throttled) Tracef(format string, v ...any) {
	if t.limiter.Allow() {
		t.Logger.Tracef(format, v...)
	}
}
