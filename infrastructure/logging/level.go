package logging

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// ParseLevel maps a textual level to a pterm level.
// Accepted values are error, warn, info, debug and trace, case-insensitive.
func ParseLevel(s string) (pterm.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return pterm.LogLevelError, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "trace":
		return pterm.LogLevelTrace, nil
	default:
		return pterm.LogLevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
