package spoke

import (
	"github.com/Smiexh/vswitch/application/logging"
	"github.com/Smiexh/vswitch/application/network/connection"
	"github.com/Smiexh/vswitch/application/network/tun"
	"github.com/Smiexh/vswitch/infrastructure/settings"
)

type AppDependencies interface {
	Settings() settings.Settings
	TunManager() tun.Manager
	Connection() connection.Connection
	Logger() logging.Logger
}

type Dependencies struct {
	settings   settings.Settings
	tunManager tun.Manager
	connection connection.Connection
	logger     logging.Logger
}

func NewDependencies(
	settings settings.Settings,
	tunManager tun.Manager,
	connection connection.Connection,
	logger logging.Logger,
) AppDependencies {
	return &Dependencies{
		settings:   settings,
		tunManager: tunManager,
		connection: connection,
		logger:     logger,
	}
}

func (d *Dependencies) Settings() settings.Settings { return d.settings }

func (d *Dependencies) TunManager() tun.Manager { return d.tunManager }

func (d *Dependencies) Connection() connection.Connection { return d.connection }

func (d *Dependencies) Logger() logging.Logger { return d.logger }
