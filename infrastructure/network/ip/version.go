package ip

type Version byte

const (
	Unknown Version = 0
	V4      Version = 4
	V6      Version = 6
)

// VersionOf reads the version nibble of the first byte.
func VersionOf(packet []byte) Version {
	if len(packet) == 0 {
		return Unknown
	}
	switch v := Version(packet[0] >> 4); v {
	case V4, V6:
		return v
	default:
		return Unknown
	}
}
