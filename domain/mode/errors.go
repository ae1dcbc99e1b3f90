package mode

import (
	"errors"
	"fmt"
)

var (
	// ErrNoArguments means the argument vector lacked even the program path.
	ErrNoArguments = errors.New("missing program path in arguments")
	// ErrNoMode means no mode argument was given and none could be prompted for.
	ErrNoMode = errors.New("no mode given")
)

// UnknownModeError reports a mode name that Parse does not recognise.
type UnknownModeError struct {
	Name string
}

func (e *UnknownModeError) Error() string {
	if e.Name == "" {
		return "no mode selected"
	}
	return fmt.Sprintf("unknown mode %q", e.Name)
}
