package tun

// TunHandler moves packets from the TUN-like interface to the transport.
type TunHandler interface {
	HandleTun() error
}

// TransportHandler moves packets from the transport to the TUN-like interface.
type TransportHandler interface {
	HandleTransport() error
}

// Worker does the TUN->CONN and CONN->TUN operations
type Worker interface {
	TunHandler
	TransportHandler
}
