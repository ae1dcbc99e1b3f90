package settings

import (
	"time"

	"github.com/Smiexh/vswitch/domain/network/message"
)

const (
	DefaultEthernetMTU = 1500
	MinimumIPv4MTU     = 576
	// MaxInterfaceNameLength is IFNAMSIZ minus the terminating NUL.
	MaxInterfaceNameLength = 15

	DefaultListen   = "0.0.0.0:4789"
	DefaultTunName  = "tun0"
	DefaultLogLevel = "info"
)

const (
	// ReceiveBufferSize bounds a single datagram, header included.
	ReceiveBufferSize = 4096
	// MaximumMTU is the largest packet a receive buffer holds behind the frame header.
	MaximumMTU = ReceiveBufferSize - message.HeaderSize

	HeartbeatInterval = 10 * time.Second
	SweepInterval     = 10 * time.Second
	LivenessTimeout   = 30 * time.Second
	// ReconnectBackoff is the spoke pause after a transport receive failure.
	ReconnectBackoff = time.Second
	// HubReceiveErrorPause is the hub pause after a failed receive.
	HubReceiveErrorPause = 100 * time.Millisecond
	// InterfaceErrorPause is the pause after a failed interface read or write.
	InterfaceErrorPause = time.Second
	StatsReportInterval = 10 * time.Second
)
