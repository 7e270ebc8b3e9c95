// Command c64debug is a line-oriented monitor: load ROM images, single-step
// or run the CPU, set breakpoints and watches, and disassemble memory. It is
// a REPL over hardware/debugger, not a GUI.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/sixtyfour/core64/config"
	"github.com/sixtyfour/core64/errors"
	"github.com/sixtyfour/core64/hardware"
	"github.com/sixtyfour/core64/hardware/debugger"
)

const historyFile = ".c64debug_history"

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: c64debug <kernal.rom> <basic.rom> <char.rom>")
		os.Exit(1)
	}

	c, err := newComputer(os.Args[1], os.Args[2], os.Args[3])
	if err != nil {
		fmt.Fprintln(os.Stderr, "c64debug:", err)
		os.Exit(1)
	}

	dbg := debugger.New(c, 256)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	repl(dbg, line, os.Stdout)
}

func newComputer(kernalPath, basicPath, charPath string) (*hardware.Computer, error) {
	cfg := config.Default()
	cfg.Drives[0].Connected = false

	c, err := hardware.New(cfg)
	if err != nil {
		return nil, err
	}

	kernal, err := os.ReadFile(kernalPath)
	if err != nil {
		return nil, err
	}
	if err := c.Mem.LoadKernalROM(kernal); err != nil {
		return nil, err
	}

	basic, err := os.ReadFile(basicPath)
	if err != nil {
		return nil, err
	}
	if err := c.Mem.LoadBasicROM(basic); err != nil {
		return nil, err
	}

	char, err := os.ReadFile(charPath)
	if err != nil {
		return nil, err
	}
	if err := c.Mem.LoadCharROM(char); err != nil {
		return nil, err
	}

	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// repl drives the command loop until the user quits or liner reports EOF
// (Ctrl-D). Every command is handled by dispatch; parse errors and halted
// runs are reported but never exit the loop.
func repl(dbg *debugger.Debugger, line *liner.State, out io.Writer) {
	for {
		input, err := line.Prompt("c64dbg> ")
		if err != nil {
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == "quit" || input == "q" {
			return
		}

		if err := dispatch(dbg, input, out); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

func dispatch(dbg *debugger.Debugger, input string, out io.Writer) error {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "step", "s":
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			if err := dbg.StepInstruction(); err != nil {
				return report(dbg, err, out)
			}
		}
		return printState(dbg, out)

	case "run", "r":
		err := dbg.Run(0)
		return report(dbg, err, out)

	case "break", "b":
		addr, err := parseAddress(args)
		if err != nil {
			return err
		}
		dbg.Breakpoints.Set(addr)
		fmt.Fprintf(out, "breakpoint set at $%04x\n", addr)
		return nil

	case "clear":
		addr, err := parseAddress(args)
		if err != nil {
			return err
		}
		dbg.Breakpoints.Clear(addr)
		return nil

	case "watch", "w":
		addr, err := parseAddress(args)
		if err != nil {
			return err
		}
		if err := dbg.Watches.Add(dbg.Computer.Mem, addr); err != nil {
			return err
		}
		fmt.Fprintf(out, "watch set at $%04x\n", addr)
		return nil

	case "disasm", "d":
		addr, err := parseAddress(args)
		if err != nil {
			addr = dbg.Computer.CPU.PC.Address()
		}
		listing, err := dbg.Disassemble(addr, 10)
		if err != nil {
			return err
		}
		for _, in := range listing {
			fmt.Fprintln(out, in.String())
		}
		return nil

	case "regs":
		return printState(dbg, out)

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// report prints why Run/Step stopped, treating a breakpoint or watch hit as
// a normal halt rather than a fatal error.
func report(dbg *debugger.Debugger, err error, out io.Writer) error {
	if err == nil {
		return printState(dbg, out)
	}
	if errors.Has(err, errors.BreakpointHit) || errors.Has(err, errors.WatchHit) {
		fmt.Fprintln(out, err)
		return printState(dbg, out)
	}
	return err
}

func printState(dbg *debugger.Debugger, out io.Writer) error {
	cpu := dbg.Computer.CPU
	fmt.Fprintf(out, "PC=$%04x A=$%02x X=$%02x Y=$%02x SP=$%02x SR=%s\n",
		cpu.PC.Address(), cpu.A.Value(), cpu.X.Value(), cpu.Y.Value(), cpu.SP.Value(), cpu.Status.String())
	return nil
}

func parseAddress(args []string) (uint16, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing address")
	}
	s := strings.TrimPrefix(args[0], "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", args[0], err)
	}
	return uint16(v), nil
}
