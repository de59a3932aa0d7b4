package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ is the zero-alloc-when-disabled logging chain used on hot paths:
// a dummy read, a sprite-evaluation step, a DMA byte transfer. Callers build
// it with Module.WarnZ/DebugZ, chain typed field setters, and finish with
// End(). When the module/level is disabled, WarnZ/DebugZ return nil and
// every chained call becomes a no-op method on a nil pointer, so no field
// formatting or map allocation happens.
type EntryZ struct {
	mod    Module
	lvl    Level
	msg    string
	fields logrus.Fields
}

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if !mod.Enabled(lvl) {
		return nil
	}
	return &EntryZ{mod: mod, lvl: lvl, msg: msg, fields: make(logrus.Fields, 4)}
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }

func (e *EntryZ) Hex8(key string, v uint8) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields[key] = fmt.Sprintf("%02x", v)
	return e
}

func (e *EntryZ) Hex16(key string, v uint16) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields[key] = fmt.Sprintf("%04x", v)
	return e
}

func (e *EntryZ) Uint8(key string, v uint8) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) Uint16(key string, v uint16) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) Int(key string, v int) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) Bool(key string, v bool) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) String(key string, v string) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields[key] = v
	return e
}

func (e *EntryZ) Err(err error) *EntryZ {
	if e == nil {
		return nil
	}
	e.fields["err"] = err
	return e
}

// End emits the record.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	entry := logrus.StandardLogger().WithField("mod", modNames[e.mod]).WithFields(e.fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	default:
		entry.Print(e.msg)
	}
}
