package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	EnvListen   = "VSWITCH_LISTEN"
	EnvServer   = "VSWITCH_SERVER"
	EnvTunName  = "VSWITCH_TUN_NAME"
	EnvMTU      = "VSWITCH_MTU"
	EnvLogLevel = "VSWITCH_LOG_LEVEL"
)

// LoadFile overlays values from a TOML file onto s. Unknown keys are rejected.
func LoadFile(path string, s *Settings) error {
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return fmt.Errorf("failed to read configuration %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown configuration keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays VSWITCH_* variables onto s.
func ApplyEnv(s *Settings, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvListen); ok {
		s.Listen = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvServer); ok {
		s.Server = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTunName); ok {
		s.TunName = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvMTU); ok {
		mtu, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMTU, err)
		}
		s.MTU = mtu
	}
	if v, ok := lookup(EnvLogLevel); ok {
		s.LogLevel = strings.TrimSpace(v)
	}
	return nil
}
