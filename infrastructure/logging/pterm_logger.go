package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/Smiexh/vswitch/application/logging"
	"github.com/pterm/pterm"
)

type PtermLogger struct {
	logger *pterm.Logger
}

func NewPtermLogger(level pterm.LogLevel) logging.Logger {
	return NewPtermLoggerWithWriter(os.Stderr, level)
}

func NewPtermLoggerWithWriter(w io.Writer, level pterm.LogLevel) logging.Logger {
	l := pterm.DefaultLogger
	l.ShowTime = true
	l.TimeFormat = "02 Jan 15:04:05"
	l.MaxWidth = 1000
	l.Writer = w
	l.Level = level
	return &PtermLogger{logger: &l}
}

func (p *PtermLogger) Printf(format string, v ...any) {
	p.logger.Info(fmt.Sprintf(format, v...))
}

func (p *PtermLogger) Debugf(format string, v ...any) {
	if p.logger.CanPrint(pterm.LogLevelDebug) {
		p.logger.Debug(fmt.Sprintf(format, v...))
	}
}

func (p *PtermLogger) Tracef(format string, v ...any) {
	if p.logger.CanPrint(pterm.LogLevelTrace) {
		p.logger.Trace(fmt.Sprintf(format, v...))
	}
}

func (p *PtermLogger) Warnf(format string, v ...any) {
	p.logger.Warn(fmt.Sprintf(format, v...))
}

func (p *PtermLogger) Errorf(format string, v ...any) {
	p.logger.Error(fmt.Sprintf(format, v...))
}
