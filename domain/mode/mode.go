package mode

import "strings"

type Mode int

const (
	Unknown Mode = iota
	// Hub relays packets between connected spokes
	Hub
	// Spoke tunnels its local interface to a hub
	Spoke
	// Version prints the build tag
	Version
)

var aliases = map[string]Mode{
	"hub":     Hub,
	"s":       Hub,
	"server":  Hub,
	"spoke":   Spoke,
	"c":       Spoke,
	"client":  Spoke,
	"version": Version,
	"v":       Version,
}

// Parse maps a mode name or one of its aliases to a Mode. Case and
// surrounding spaces are ignored.
func Parse(name string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if m, ok := aliases[normalized]; ok {
		return m, nil
	}
	return Unknown, &UnknownModeError{Name: normalized}
}

func (m Mode) String() string {
	switch m {
	case Hub:
		return "hub"
	case Spoke:
		return "spoke"
	case Version:
		return "version"
	default:
		return "unknown"
	}
}
