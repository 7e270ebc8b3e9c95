// Command c64run is a headless runner: it loads ROM images (and, optionally,
// a cartridge and a 1541 ROM) into a Computer, then steps it for a fixed
// number of instructions with no video or audio output attached. It exists
// to exercise the core outside of any GUI, for scripted regression runs.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pborman/getopt/v2"

	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/hardware"
	"github.com/sixtyfour/core64/hardware/cartridge"
	"github.com/sixtyfour/core64/hardware/dmadebug"
)

func main() {
	kernal := getopt.StringLong("kernal", 'k', "", "path to the Kernal ROM image")
	basic := getopt.StringLong("basic", 'b', "", "path to the BASIC ROM image")
	char := getopt.StringLong("char", 'c', "", "path to the character ROM image")
	driveROM := getopt.StringLong("drive-rom", 'd', "", "path to the 1541 ROM image (optional, no drive attached if empty)")
	cart := getopt.StringLong("cart", 'x', "", "path to a cartridge image (optional)")
	cycles := getopt.Uint64Long("cycles", 'n', 1000000, "number of instructions to execute before exiting")
	debugAddr := getopt.StringLong("dma-debug", 0, "", "if set, serve live cycle-accounting instrumentation at this address (e.g. localhost:18066)")
	help := getopt.BoolLong("help", 'h', "display this help and exit")

	getopt.Parse()
	if *help {
		getopt.Usage()
		os.Exit(0)
	}

	if err := run(*kernal, *basic, *char, *driveROM, *cart, *cycles, *debugAddr); err != nil {
		fmt.Fprintln(os.Stderr, "c64run:", err)
		os.Exit(1)
	}
}

func run(kernalPath, basicPath, charPath, drivePath, cartPath string, cycles uint64, debugAddr string) error {
	if kernalPath == "" || basicPath == "" || charPath == "" {
		return fmt.Errorf("kernal, basic and char ROM paths are all required")
	}

	cfg := config.Default()
	cfg.Drives[0].Connected = drivePath != ""
	cfg.DMADebug = debugAddr != ""

	c, err := hardware.New(cfg)
	if err != nil {
		return err
	}

	kernal, err := os.ReadFile(kernalPath)
	if err != nil {
		return err
	}
	if err := c.Mem.LoadKernalROM(kernal); err != nil {
		return err
	}

	basic, err := os.ReadFile(basicPath)
	if err != nil {
		return err
	}
	if err := c.Mem.LoadBasicROM(basic); err != nil {
		return err
	}

	char, err := os.ReadFile(charPath)
	if err != nil {
		return err
	}
	if err := c.Mem.LoadCharROM(char); err != nil {
		return err
	}

	if drivePath != "" {
		rom, err := os.ReadFile(drivePath)
		if err != nil {
			return err
		}
		if err := c.LoadDriveROM(0, rom); err != nil {
			return err
		}
	}

	if cartPath != "" {
		data, err := os.ReadFile(cartPath)
		if err != nil {
			return err
		}
		cart, err := cartridge.NewFromImage(cartPath, data)
		if err != nil {
			return err
		}
		c.AttachCartridge(cart)
	}

	if debugAddr != "" {
		mon := dmadebug.New(c)
		mon.Start(debugAddr, time.Second)
		defer mon.Stop()
	}

	if err := c.Reset(); err != nil {
		return err
	}

	for i := uint64(0); i < cycles; i++ {
		if err := c.Step(); err != nil {
			return err
		}
	}

	return nil
}
