// Package mode_selection decides which mode the process runs in.
package mode_selection

import (
	"fmt"

	"github.com/Smiexh/vswitch/domain/mode"
	"github.com/Smiexh/vswitch/presentation/bubble_tea"
)

var menu = []bubble_tea.Option{
	{Value: "hub", Description: "relay packets between spokes"},
	{Value: "spoke", Description: "tunnel this host to a hub"},
	{Value: "version", Description: "print the build tag"},
}

// Picker reads the mode from args[1]. With no mode argument it shows a
// menu when a terminal is attached and fails otherwise.
type Picker struct {
	args        []string
	interactive bool
	prompt      func() (string, error)
}

func NewPicker(args []string, interactive bool) *Picker {
	return &Picker{
		args:        args,
		interactive: interactive,
		prompt: func() (string, error) {
			return bubble_tea.Select("Select mode", menu)
		},
	}
}

func (p *Picker) Mode() (mode.Mode, error) {
	switch {
	case len(p.args) == 0:
		return mode.Unknown, mode.ErrNoArguments
	case len(p.args) > 1:
		return mode.Parse(p.args[1])
	case !p.interactive:
		return mode.Unknown, mode.ErrNoMode
	}

	choice, err := p.prompt()
	if err != nil {
		return mode.Unknown, fmt.Errorf("mode selection failed: %w", err)
	}
	return mode.Parse(choice)
}
