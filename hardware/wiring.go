package hardware

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// DumpWiring writes a Graphviz dot-format graph of c's chip ownership to w:
// every field memviz can reach from Computer, rendered as a node-and-edge
// diagram. It exists to spot a bank-switch or ownership regression (a chip
// wired to the wrong sibling, a nil adapter) by eye rather than by reading
// Computer.New line by line.
func DumpWiring(c *Computer, w io.Writer) {
	memviz.Map(w, c)
}
