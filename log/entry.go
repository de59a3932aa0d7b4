package log

import "gopkg.in/Sirupsen/logrus.v0"

// printf-style entry point, meant for cold paths: ROM loading, mapper
// construction, reset, CPU halts.

func (mod Module) entry() *logrus.Entry {
	return logrus.StandardLogger().WithField("mod", modNames[mod])
}

func (mod Module) Debugf(format string, args ...any) {
	if mod.Enabled(DebugLevel) {
		mod.entry().Debugf(format, args...)
	}
}

func (mod Module) Infof(format string, args ...any) {
	if mod.Enabled(InfoLevel) {
		mod.entry().Infof(format, args...)
	}
}

func (mod Module) Warnf(format string, args ...any) {
	if mod.Enabled(WarnLevel) {
		mod.entry().Warnf(format, args...)
	}
}

func (mod Module) Errorf(format string, args ...any) {
	if mod.Enabled(ErrorLevel) {
		mod.entry().Errorf(format, args...)
	}
}
