package app

// UIMode describes how the application interacts with the user.
type UIMode int

const (
	UnknownUIMode UIMode = iota
	// TUI prompts for what the command line left out.
	TUI
	// CLI never prompts.
	CLI
)

// DetectUIMode picks TUI only when stdin is a terminal; otherwise missing
// input is an error instead of a prompt.
func DetectUIMode(stdinIsTerminal bool) UIMode {
	if stdinIsTerminal {
		return TUI
	}
	return CLI
}

func (m UIMode) Interactive() bool {
	return m == TUI
}
