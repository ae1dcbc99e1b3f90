package configuration

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Smiexh/vswitch/domain/mode"
	"github.com/Smiexh/vswitch/infrastructure/logging"
	"github.com/Smiexh/vswitch/infrastructure/settings"
	"github.com/Smiexh/vswitch/presentation/bubble_tea"
)

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// option names; every long name also has a one-letter alias
const (
	optListen   = "listen"
	optServer   = "server"
	optTunName  = "tun-name"
	optMTU      = "mtu"
	optLogLevel = "log-level"
	optConfig   = "config"
)

var aliases = map[string]string{
	"l": optListen,
	"s": optServer,
	"t": optTunName,
	"m": optMTU,
}

// modeOptions lists the options each mode accepts.
var modeOptions = map[mode.Mode]map[string]bool{
	mode.Hub: {
		optListen: true, optTunName: true, optMTU: true, optLogLevel: true, optConfig: true,
	},
	mode.Spoke: {
		optServer: true, optTunName: true, optMTU: true, optLogLevel: true, optConfig: true,
	},
}

// Resolver builds the startup Settings for a mode. Sources are applied in
// increasing priority: defaults, TOML file, environment (.env included),
// explicit flags.
type Resolver struct {
	interactive bool
	dotEnvPath  string
	lookupEnv   func(string) (string, bool)
	askServer   func() string
	output      io.Writer
}

func NewResolver(interactive bool) *Resolver {
	return &Resolver{
		interactive: interactive,
		dotEnvPath:  DotEnvFile,
		lookupEnv:   os.LookupEnv,
		askServer:   askForServer,
		output:      os.Stderr,
	}
}

type flagValues struct {
	listen, server, tunName, logLevel, config string
	mtu                                       int
}

// Resolve parses args (the arguments after the mode) and returns validated settings.
func (r *Resolver) Resolve(m mode.Mode, args []string) (settings.Settings, error) {
	values, explicit, err := r.parseFlags(m, args)
	if err != nil {
		return settings.Settings{}, err
	}

	s := settings.Default()
	if values.config != "" {
		if err := settings.LoadFile(values.config, &s); err != nil {
			return settings.Settings{}, err
		}
	}
	if r.dotEnvPath != "" {
		if err := settings.LoadDotEnv(r.dotEnvPath); err != nil {
			return settings.Settings{}, err
		}
	}
	if err := settings.ApplyEnv(&s, r.lookupEnv); err != nil {
		return settings.Settings{}, err
	}

	for name := range explicit {
		switch name {
		case optListen:
			s.Listen = values.listen
		case optServer:
			s.Server = values.server
		case optTunName:
			s.TunName = values.tunName
		case optMTU:
			s.MTU = values.mtu
		case optLogLevel:
			s.LogLevel = values.logLevel
		}
	}

	if m == mode.Spoke && s.Server == "" && r.interactive {
		s.Server = r.askServer()
	}

	if err := s.Validate(m); err != nil {
		return settings.Settings{}, err
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}

func (r *Resolver) parseFlags(m mode.Mode, args []string) (flagValues, map[string]bool, error) {
	accepted, ok := modeOptions[m]
	if !ok {
		return flagValues{}, nil, fmt.Errorf("no options for %s mode", m)
	}

	defaults := settings.Default()
	var values flagValues
	fs := flag.NewFlagSet(m.String(), flag.ContinueOnError)
	fs.SetOutput(r.output)
	fs.StringVar(&values.listen, optListen, defaults.Listen, "hub listen address, ip:port")
	fs.StringVar(&values.server, optServer, "", "hub address to connect to, host:port")
	fs.StringVar(&values.tunName, optTunName, defaults.TunName, "TUN interface name")
	fs.IntVar(&values.mtu, optMTU, defaults.MTU, "TUN interface MTU")
	fs.StringVar(&values.logLevel, optLogLevel, defaults.LogLevel, "log level: error, warn, info, debug, trace")
	fs.StringVar(&values.config, optConfig, "", "optional TOML configuration file")
	for alias, name := range aliases {
		target := fs.Lookup(name)
		fs.Var(target.Value, alias, "alias for -"+name)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return flagValues{}, nil, ErrHelpRequested
		}
		return flagValues{}, nil, err
	}
	if fs.NArg() > 0 {
		return flagValues{}, nil, &UnexpectedArgumentsError{args: fs.Args()}
	}

	explicit := make(map[string]bool)
	var mismatch error
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, isAlias := aliases[name]; isAlias {
			name = long
		}
		if !accepted[name] && mismatch == nil {
			mismatch = NewOptionNotForModeError(f.Name, m)
		}
		explicit[name] = true
	})
	if mismatch != nil {
		return flagValues{}, nil, mismatch
	}
	return values, explicit, nil
}

func askForServer() string {
	address, err := bubble_tea.Ask("Hub address (host:port)", "203.0.113.1:4789")
	if err != nil {
		return ""
	}
	return address
}
