package debugger

import (
	"github.com/sixtyfour/core64/errors"
	"github.com/sixtyfour/core64/hardware"
)

// Debugger wraps a running Computer with the inspection surface a front
// end needs: breakpoints, watches, a trace of recently executed
// instructions, and disassembly, none of which the Computer itself knows
// about.
type Debugger struct {
	Computer *hardware.Computer

	Breakpoints *Breakpoints
	Watches     *Watches
	Trace       *Trace
}

// New wraps c. traceDepth sets the size of the instruction trace ring
// buffer; 0 disables tracing.
func New(c *hardware.Computer, traceDepth int) *Debugger {
	d := &Debugger{
		Computer:    c,
		Breakpoints: NewBreakpoints(),
		Watches:     NewWatches(),
	}
	if traceDepth > 0 {
		d.Trace = NewTrace(traceDepth)
	}
	return d
}

// StepInstruction advances the Computer by one Step, recording the
// pre-execution register state to the trace (if enabled) and checking
// watches afterward. It does not itself consult Breakpoints — Run does.
func (d *Debugger) StepInstruction() error {
	if d.Trace != nil {
		d.Trace.Record(d.snapshot())
	}

	if err := d.Computer.Step(); err != nil {
		return err
	}

	if d.Watches != nil {
		address, old, updated, hit, err := d.Watches.Check(d.Computer.Mem)
		if err != nil {
			return err
		}
		if hit {
			return errors.Errorf(errors.WatchHit, address, old, updated)
		}
	}

	return nil
}

// Run steps the Computer until a breakpoint fires, a watch fires, or steps
// have all been consumed (steps <= 0 means run until a breakpoint/watch
// stops it). It returns nil only when steps ran out without either firing.
func (d *Debugger) Run(steps int) error {
	for {
		if err := d.StepInstruction(); err != nil {
			return err
		}

		pc := d.Computer.CPU.PC.Address()
		if d.Breakpoints.Check(pc) {
			return errors.Errorf(errors.BreakpointHit, pc)
		}

		if steps > 0 {
			steps--
			if steps == 0 {
				return nil
			}
		}
	}
}

// Disassemble decodes count instructions starting at address without
// touching CPU state.
func (d *Debugger) Disassemble(address uint16, count int) ([]Instruction, error) {
	return DisassembleRange(d.Computer.Mem, address, count)
}

func (d *Debugger) snapshot() TraceEntry {
	cpu := d.Computer.CPU
	return TraceEntry{
		PC:     cpu.PC.Address(),
		A:      cpu.A.Value(),
		X:      cpu.X.Value(),
		Y:      cpu.Y.Value(),
		SP:     cpu.SP.Value(),
		Status: cpu.Status.Value(),
	}
}
