// Package elevation reports whether the process may create TUN interfaces.
package elevation
