//go:build windows

package elevation

import "golang.org/x/sys/windows"

// IsElevated reports whether the process token carries the elevated flag.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

func Hint() string {
	return "start the terminal with Run as administrator so the wintun adapter can be created"
}
