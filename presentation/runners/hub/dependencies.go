package hub

import (
	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/connection"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/routing/hub/session_management"
	"github.com/Smiexh/vswitch/infrastructure/settings"
)

type AppDependencies interface {
	Settings() settings.Settings
	TunManager() tun.Manager
	Listener() connection.Listener
	Clock() session_management.Clock
	Logger() logging.Logger
}

type Dependencies struct {
	settings   settings.Settings
	tunManager tun.Manager
	listener   connection.Listener
	clock      session_management.Clock
	logger     logging.Logger
}

func NewDependencies(
	settings settings.Settings,
	tunManager tun.Manager,
	listener connection.Listener,
	clock session_management.Clock,
	logger logging.Logger,
) AppDependencies {
	return &Dependencies{
		settings:   settings,
		tunManager: tunManager,
		listener:   listener,
		clock:      clock,
		logger:     logger,
	}
}

func (d *Dependencies) Settings() settings.Settings { return d.settings }

func (d *Dependencies) TunManager() tun.Manager { return d.tunManager }

func (d *Dependencies) Listener() connection.Listener { return d.listener }

func (d *Dependencies) Clock() session_management.Clock { return d.clock }

func (d *Dependencies) Logger() logging.Logger { return d.logger }
