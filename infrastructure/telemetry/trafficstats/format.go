package trafficstats

import (
	"strconv"
	"time"
)

// Bytes prints a byte count with binary prefixes.
type Bytes uint64

func (b Bytes) String() string {
	return scale(float64(b)) + "B"
}

// Rate is Bytes spread over an interval, printed per second.
func Rate(b uint64, over time.Duration) string {
	if over < time.Second {
		over = time.Second
	}
	return scale(float64(b)/over.Seconds()) + "B/s"
}

const prefixes = " KMGT"

func scale(v float64) string {
	i := 0
	for v >= 1024 && i < len(prefixes)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return strconv.FormatFloat(v, 'f', 0, 64) + " "
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + prefixes[i:i+1] + "i"
}
