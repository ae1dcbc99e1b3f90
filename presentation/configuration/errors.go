package configuration

import (
	"errors"
	"fmt"

	"github.com/Smiexh/vswitch/domain/mode"
)

// ErrHelpRequested is returned when -h or -help was given; usage has been printed.
var ErrHelpRequested = errors.New("help requested")

// OptionNotForModeError reports a flag that belongs to the other mode.
type OptionNotForModeError struct {
	option string
	mode   mode.Mode
}

func NewOptionNotForModeError(option string, m mode.Mode) error {
	return &OptionNotForModeError{option: option, mode: m}
}

func (e *OptionNotForModeError) Error() string {
	return fmt.Sprintf("-%s is not supported in %s mode", e.option, e.mode)
}

// UnexpectedArgumentsError reports positional arguments left after the flags.
type UnexpectedArgumentsError struct {
	args []string
}

func (e *UnexpectedArgumentsError) Error() string {
	return fmt.Sprintf("unexpected arguments: %q", e.args)
}
