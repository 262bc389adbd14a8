// Command c64core is a headless driver for the emulator core: it loads the
// three mask ROMs (and optionally a cartridge image and a disk image),
// resets the machine, runs it for a fixed cycle budget, and reports the
// resulting machine state. Grounded on the teacher's root gopher2600.go, a
// flag.FlagSet-based multi-mode launcher (RUN/DEBUG/DISASM/REGRESS/...);
// this core has no GUI or debugger TUI in scope (spec §1), so the launcher
// collapses to the one RUN-equivalent mode that matters end to end: load,
// reset, run N cycles, report.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vc64/core/config"
	"github.com/vc64/core/crt"
	"github.com/vc64/core/d64"
	"github.com/vc64/core/debug"
	"github.com/vc64/core/machine"
	"github.com/vc64/core/romloader"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "c64core:", err)
		os.Exit(1)
	}
}

type flags struct {
	config   string
	kernal   string
	basic    string
	chargen  string
	cart     string
	disk     string
	cycles   uint64
	quiet    bool
	dumpText bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	flgs := flag.NewFlagSet("c64core", flag.ContinueOnError)
	flgs.StringVar(&f.config, "config", config.DefaultConfigFile, "preferences file")
	flgs.StringVar(&f.kernal, "kernal", "", "path to the KERNAL ROM image")
	flgs.StringVar(&f.basic, "basic", "", "path to the BASIC ROM image")
	flgs.StringVar(&f.chargen, "chargen", "", "path to the character ROM image")
	flgs.StringVar(&f.cart, "cart", "", "path to a .crt cartridge image (optional)")
	flgs.StringVar(&f.disk, "disk", "", "path to a .d64 disk image (optional)")
	flgs.Uint64Var(&f.cycles, "cycles", 3_000_000, "number of cycles to run")
	flgs.BoolVar(&f.quiet, "quiet", false, "suppress the status line")
	flgs.BoolVar(&f.dumpText, "screen", false, "dump decoded screen RAM text after running")
	if err := flgs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.New(f.config)
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}
	defer cfg.Save()

	m, err := machine.New(cfg)
	if err != nil {
		return fmt.Errorf("building machine: %w", err)
	}

	if err := loadROM(m, f.kernal, romloader.KindKernal); err != nil {
		return err
	}
	if err := loadROM(m, f.basic, romloader.KindBasic); err != nil {
		return err
	}
	if err := loadROM(m, f.chargen, romloader.KindChargen); err != nil {
		return err
	}

	if f.cart != "" {
		if err := loadCartridge(m, f.cart); err != nil {
			return err
		}
	}
	if f.disk != "" {
		if err := loadDisk(m, f.disk); err != nil {
			return err
		}
	}

	if err := m.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	var status *statusLine
	if !f.quiet {
		status = newStatusLine(os.Stdout)
	}

	const reportEvery = 100_000
	for done := uint64(0); done < f.cycles; {
		batch := reportEvery
		if remaining := f.cycles - done; remaining < uint64(batch) {
			batch = int(remaining)
		}
		if err := m.Run(uint64(batch)); err != nil {
			return fmt.Errorf("cycle %d: %w", m.Cycles(), err)
		}
		done += uint64(batch)
		if status != nil {
			status.Update(fmt.Sprintf("%d/%d cycles", m.Cycles(), f.cycles))
		}
	}
	if status != nil {
		status.Done(fmt.Sprintf("%d cycles complete", m.Cycles()))
	}

	if f.dumpText {
		screen := make([]byte, debug.ScreenBytes)
		for i := range screen {
			screen[i] = m.Memory().Peek(0x0400 + uint16(i))
		}
		text, err := debug.DecodeText(screen)
		if err != nil {
			return fmt.Errorf("decoding screen RAM: %w", err)
		}
		fmt.Println(text)
	}

	return nil
}

func loadROM(m *machine.Machine, path string, kind romloader.Kind) error {
	if path == "" {
		return nil
	}
	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s ROM: %w", kind, err)
	}
	if err := m.LoadROM(kind, image); err != nil {
		return fmt.Errorf("loading %s ROM: %w", kind, err)
	}
	return nil
}

func loadCartridge(m *machine.Machine, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading cartridge: %w", err)
	}
	mapper, _, err := crt.BuildMapper(raw)
	if err != nil {
		return fmt.Errorf("building cartridge mapper: %w", err)
	}
	return m.InstallCartridge(mapper)
}

func loadDisk(m *machine.Machine, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading disk image: %w", err)
	}
	dsk, err := d64.Encode(raw)
	if err != nil {
		return fmt.Errorf("encoding disk image: %w", err)
	}
	m.InsertDisk(dsk)
	return nil
}
