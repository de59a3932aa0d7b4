// Package log is a thin, per-module structured logging facade over logrus.
//
// Every subsystem (CPU, PPU, bus, mapper, DMA, APU, scheduler) logs through
// a Module constant so that hot paths -- a call site that runs once per CPU
// cycle or PPU dot -- can be gated on a level check before any formatting or
// allocation happens.
package log

import "gopkg.in/Sirupsen/logrus.v0"

type Level = logrus.Level

const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
	FatalLevel = logrus.FatalLevel
	PanicLevel = logrus.PanicLevel
)

// Module identifies a logging subsystem.
type Module uint

const (
	ModCPU Module = iota + 1
	ModPPU
	ModBus
	ModMapper
	ModDMA
	ModAPU
	ModScheduler
	ModInput
	ModIRES

	endStandardMods
)

var modCount = endStandardMods

var modNames = []string{
	"<error>", "cpu", "ppu", "bus", "mapper", "dma", "apu", "sched", "input", "ines",
}

// modDebugMask controls which modules emit Debug-level records; Warn and
// above are always enabled.
var modDebugMask uint64

func (mod Module) mask() uint64 { return 1 << uint64(mod) }

func (mod Module) Enabled(level Level) bool {
	if level <= WarnLevel {
		return true
	}
	return modDebugMask&mod.mask() != 0
}

// EnableDebug turns on Debug-level logging for the given modules.
func EnableDebug(mods ...Module) {
	for _, m := range mods {
		modDebugMask |= m.mask()
	}
}

// ModuleByName resolves a module by its lowercase name, for the module
// names listed in the harness config's log section (e.g. "cpu", "ppu").
func ModuleByName(name string) (Module, bool) {
	for i, s := range modNames {
		if s == name {
			return Module(i), true
		}
	}
	return 0, false
}

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}
