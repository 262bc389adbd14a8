//go:build unix

package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/term/termios"
)

// statusLine prints a single, periodically-overwritten progress line to a
// terminal, grounded on the teacher's debugger/terminal/colorterm/easyterm
// package (same termios.Tcgetattr probe for "is this actually a tty", same
// posture of degrading to plain output otherwise). No raw/cbreak mode is
// entered here: c64core never reads terminal input, so only the write side
// of easyterm's contract applies.
type statusLine struct {
	out      *os.File
	isTTY    bool
	lastLine string
}

// newStatusLine probes out and returns a statusLine that overwrites its
// line in place when out is a terminal, or falls back to one line per
// update (no carriage-return tricks) when it is redirected to a file or
// pipe, matching how the teacher's plainterm degrades compared to colorterm.
func newStatusLine(out *os.File) *statusLine {
	var attr syscall.Termios
	isTTY := termios.Tcgetattr(out.Fd(), &attr) == nil
	return &statusLine{out: out, isTTY: isTTY}
}

// Update overwrites the status line with msg.
func (s *statusLine) Update(msg string) {
	if s.isTTY {
		fmt.Fprintf(s.out, "\r\x1b[K%s", msg)
	} else {
		fmt.Fprintln(s.out, msg)
	}
	s.lastLine = msg
}

// Done terminates the status line, leaving msg as the final, permanent line.
func (s *statusLine) Done(msg string) {
	s.Update(msg)
	fmt.Fprintln(s.out)
}
