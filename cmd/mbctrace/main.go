// Command mbctrace binds a cartridge's memory bank controller and replays
// a trace of bus accesses against it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/thelolagemann/gomeboy-mbc/internal/cartridge"
	"github.com/thelolagemann/gomeboy-mbc/internal/cheats"
	"github.com/thelolagemann/gomeboy-mbc/pkg/emu"
	"github.com/thelolagemann/gomeboy-mbc/pkg/log"
	"github.com/thelolagemann/gomeboy-mbc/pkg/utils"
)

type config struct {
	rom        string
	trace      string
	saveFolder string
	autosave   bool
	rumble     uint
	cheats     string
	debug      bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.rom, "rom", "", "The rom file to load (.gb, .gbc, .gz, .xz, .zip or .7z)")
	flag.StringVar(&cfg.trace, "trace", "", "The trace to replay, defaults to stdin")
	flag.StringVar(&cfg.saveFolder, "saves", "", "The folder to keep battery saves in, none if empty")
	flag.BoolVar(&cfg.autosave, "autosave", false, "Write RAM and clock changes through to the save as they happen")
	flag.UintVar(&cfg.rumble, "rumble", 0, "Rumble strength, 0 disables rumble")
	flag.StringVar(&cfg.cheats, "cheats", "", "A file of Game Genie codes to apply")
	flag.BoolVar(&cfg.debug, "debug", false, "Log at debug level")
	flag.Parse()

	if cfg.rom == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New()
	if cfg.debug {
		logger = log.NewWithOutput(os.Stderr)
	}

	if err := run(cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg config, logger log.Logger, stdin io.Reader, stdout io.Writer) (err error) {
	rom, err := utils.LoadFile(cfg.rom)
	if err != nil {
		return err
	}

	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(stdout, header); err != nil {
		return err
	}

	opts := []cartridge.Opt{
		cartridge.WithLogger(logger),
		cartridge.WithRumbleStrength(uint8(cfg.rumble)),
	}
	if cfg.rumble > 0 {
		opts = append(opts, cartridge.WithRumbleDevice(func(on bool, strength uint8) {
			logger.Infof("rumble: %v (strength %d)", on, strength)
		}))
	}

	var save *emu.Save
	if cfg.saveFolder != "" && header.HasBattery() {
		if save, err = emu.Open(cfg.saveFolder, header.Title, rom, header.SaveSize()); err != nil {
			return err
		}
		defer func() {
			if closeErr := save.Close(); closeErr != nil {
				err = multierror.Append(err, closeErr).ErrorOrNil()
			}
		}()
		opts = append(opts, cartridge.WithSaveStore(save))
		if cfg.autosave {
			opts = append(opts, cartridge.WithAutosave())
		}
	}

	cart, err := cartridge.NewWithHeader(rom, header, opts...)
	if err != nil {
		return err
	}
	if save != nil && save.Existed() {
		if err := cart.LoadRAM(save.Bytes()); err != nil {
			return err
		}
	}

	var bus cartridge.Mapper = cart
	if cfg.cheats != "" {
		genie := cheats.NewGameGenie(cart, logger)
		if err := genie.LoadFile(cfg.cheats); err != nil {
			return err
		}
		bus = genie
	}

	trace, name := stdin, "stdin"
	if cfg.trace != "" {
		f, err := os.Open(cfg.trace)
		if err != nil {
			return err
		}
		defer f.Close()
		trace, name = f, cfg.trace
	}

	if err := replay(bus, trace, stdout); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if save != nil && !cfg.autosave {
		return cart.Flush()
	}
	return nil
}
