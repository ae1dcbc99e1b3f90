package logging

import "github.com/Smiexh/vswitch/application/logging"

type NopLogger struct{}

func NewNopLogger() logging.Logger { return NopLogger{} }

func (NopLogger) Printf(string, ...any) {}
func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Tracef(string, ...any) {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
