// Command nescore is a headless test harness around the core: it loads a
// ROM, wires it into a system.System, and either prints its header or
// runs it for a fixed number of frames. There is deliberately no
// video/audio/input surface here -- that is a host concern outside this
// module's scope (spec.md §13.4).
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-faster/errors"

	"nescore/ines"
	"nescore/internal/harnessconfig"
	"nescore/log"
	"nescore/mapper"
	"nescore/ppu"
	"nescore/system"
)

type romInfoCmd struct {
	ROM string `arg:"" help:"Path to an iNES ROM file."`
}

func (c *romInfoCmd) Run() error {
	rom, err := ines.Open(c.ROM)
	if err != nil {
		return errors.Wrap(err, "open rom")
	}
	fmt.Printf("mapper=%d mirroring=%s prg=%dKiB chr=%dKiB chrRAM=%v battery=%v\n",
		rom.Mapper, rom.Mirroring, len(rom.PRG)/1024, len(rom.CHR)/1024, rom.CHRIsRAM, rom.Battery)
	return nil
}

type runCmd struct {
	ROM    string `arg:"" help:"Path to an iNES ROM file."`
	Config string `help:"Path to a TOML harness config." default:""`
	Frames int    `help:"Number of frames to run before exiting." default:"60"`
}

func (c *runCmd) Run() error {
	cfg := harnessconfig.Default()
	if c.Config != "" {
		var err error
		cfg, err = harnessconfig.Load(c.Config)
		if err != nil {
			return err
		}
	}
	for _, m := range cfg.Log.Modules {
		if mod, ok := log.ModuleByName(m); ok {
			log.EnableDebug(mod)
		}
	}

	rom, err := ines.Open(c.ROM)
	if err != nil {
		return errors.Wrap(err, "open rom")
	}
	cart, err := mapper.New(rom)
	if err != nil {
		return errors.Wrap(err, "construct mapper")
	}

	region := ppu.NTSC
	if cfg.Region == "pal" {
		region = ppu.PAL
	}

	sys := system.New(cart, region)
	sys.PowerOn()

	frames := 0
	for frames < c.Frames {
		sys.RunCPUCycle()
		if sys.PPU.FrameDone() {
			frames++
		}
	}
	fmt.Printf("ran %d frames\n", frames)
	return nil
}

var cli struct {
	RomInfo romInfoCmd `cmd:"" name:"rom-info" help:"Print an iNES ROM's header fields."`
	Run     runCmd     `cmd:"" help:"Run a ROM headlessly for a fixed number of frames."`
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("nescore"), kong.Description("A cycle-accurate NES core test harness."))
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "nescore:", err)
		os.Exit(1)
	}
}
