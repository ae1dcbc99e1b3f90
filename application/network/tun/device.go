package tun

// Device is a packet-oriented view of a TUN interface: one Read returns one
// IP packet and one Write injects one IP packet.
type Device interface {
	Read(data []byte) (int, error)
	Write(data []byte) (int, error)
	Close() error
}

// Manager creates and disposes the platform TUN interface.
type Manager interface {
	CreateDevice() (Device, error)
	DisposeDevices() error
}
