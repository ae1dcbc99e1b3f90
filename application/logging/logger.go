package logging

// Logger is the leveled logging contract used across the module.
// Printf logs at info level.
type Logger interface {
	Printf(format string, v ...any)
	Debugf(format string, v ...any)
	Tracef(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}
