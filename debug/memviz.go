package debug

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// DumpGraph renders v's in-memory data-structure graph as graphviz dot
// source, written to w. Intended for the suspended-machine inspector: a
// caller suspends the machine, then dumps its bank-map/cartridge
// ownership tree to a .dot file for visual inspection of what owns what
// (which mapper backs which bank, which CIA a port is wired to) without
// stepping through a debugger.
func DumpGraph(w io.Writer, v interface{}) {
	memviz.Map(w, &v)
}
