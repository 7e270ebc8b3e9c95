package debugger

import "github.com/sixtyfour/core64/hardware/memory/bus"

// watch remembers the last value seen at an address, so Check can tell
// when it has changed.
type watch struct {
	address uint16
	last    uint8
	armed   bool
}

// Watches halts stepping whenever a memory location's value changes,
// compared to what it held when the watch was added or last fired —
// equivalent to a monitor's "trap on write" but implemented by sampling,
// since the memory map has no write-hook surface for arbitrary addresses.
type Watches struct {
	list []watch
}

// NewWatches returns an empty watch set.
func NewWatches() *Watches {
	return &Watches{}
}

// Add arms a watch on address, sampling its current value from b so the
// first Check call doesn't immediately fire on a value that was already
// there.
func (w *Watches) Add(b bus.DebuggerBus, address uint16) error {
	v, err := b.Peek(address)
	if err != nil {
		return err
	}
	for i := range w.list {
		if w.list[i].address == address {
			w.list[i] = watch{address: address, last: v, armed: true}
			return nil
		}
	}
	w.list = append(w.list, watch{address: address, last: v, armed: true})
	return nil
}

// Remove disarms the watch on address, if any.
func (w *Watches) Remove(address uint16) {
	for i := range w.list {
		if w.list[i].address == address {
			w.list = append(w.list[:i], w.list[i+1:]...)
			return
		}
	}
}

// Check samples every armed watch against b's current memory and returns
// the address and old/new values of the first one that has changed since
// it was last sampled. ok is false when nothing has changed.
func (w *Watches) Check(b bus.DebuggerBus) (address uint16, old, updated uint8, ok bool, err error) {
	for i := range w.list {
		if !w.list[i].armed {
			continue
		}
		v, err := b.Peek(w.list[i].address)
		if err != nil {
			return 0, 0, 0, false, err
		}
		if v != w.list[i].last {
			old = w.list[i].last
			w.list[i].last = v
			return w.list[i].address, old, v, true, nil
		}
	}
	return 0, 0, 0, false, nil
}

// List returns the addresses currently being watched.
func (w *Watches) List() []uint16 {
	out := make([]uint16, len(w.list))
	for i := range w.list {
		out[i] = w.list[i].address
	}
	return out
}
