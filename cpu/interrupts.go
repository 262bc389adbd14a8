package cpu

// Interrupt source bits, shared by IRQLine and NMILine. Matches the
// InterruptSource enum named in spec.md §3.1/§4.2 and original_source's
// CPU.h (CIA, VIC, ATN, VIA, EXPANSION, KEYBOARD); VIA is split into VIA1
// and VIA2 here since the drive's two VIAs pull the C64 CPU's NMI/IRQ
// through entirely separate paths (VIA1 only ever affects the drive's own
// CPU, never the C64's, but the bit is reserved for symmetry with the
// drive's interrupt lines).
const (
	SourceCIA uint8 = 1 << iota
	SourceVIC
	SourceATN
	SourceVIA1
	SourceVIA2
	SourceExpansion
	SourceKeyboard
)

// PullIRQ asserts the IRQ line from the given source. Release with
// ReleaseIRQ. The line is asserted (low) as long as any source bit is set.
func (c *CPU) PullIRQ(source uint8) {
	c.IRQLine |= source
}

// ReleaseIRQ clears the given source's IRQ pull.
func (c *CPU) ReleaseIRQ(source uint8) {
	c.IRQLine &^= source
}

// PullNMI asserts the NMI line from the given source.
func (c *CPU) PullNMI(source uint8) {
	c.NMILine |= source
}

// ReleaseNMI clears the given source's NMI pull.
func (c *CPU) ReleaseNMI(source uint8) {
	c.NMILine &^= source
}

// sampleEdgeDetectors runs once per cycle, at phi2, regardless of where the
// CPU is in its instruction: the NMI edge detector and the IRQ level
// detector both sample their line every cycle, independent of polling
// (spec.md §4.2).
func (c *CPU) sampleEdgeDetectors() {
	nmiLow := c.NMILine != 0
	if nmiLow && !c.nmiLineWasLow {
		// 1->0 transition: raise the edge-detector's internal signal. It
		// becomes externally visible one cycle later (the pipeline shift
		// below), per the nesdev description spec.md §4.2 quotes nearly
		// verbatim.
		c.nmiPipeline[0] = true
	}
	c.nmiLineWasLow = nmiLow

	c.irqPipeline[0] = c.IRQLine != 0

	// shift the one-cycle delay pipelines
	c.nmiPending = c.nmiPipeline[1]
	c.nmiPipeline[1] = c.nmiPipeline[0]
	c.nmiPipeline[0] = false

	c.irqAsserted = c.irqPipeline[1]
	c.irqPipeline[1] = c.irqPipeline[0]
}

// pollInterrupts is called at the last cycle of every instruction (spec.md
// §4.2 step 3). It reads the one-cycle-delayed signals sampled by
// sampleEdgeDetectors, so an interrupt taken at the end of instruction N
// uses line state sampled during cycle N-1. NMI takes priority over IRQ
// when both are pending; the IRQ remains pending for the next poll.
func (c *CPU) pollInterrupts() {
	if c.NoInterrupts {
		return
	}
	if c.nmiPending {
		c.nmiPending = false
		c.pendingInterrupt = interruptNMI
		return
	}
	if c.irqAsserted && !c.I {
		c.pendingInterrupt = interruptIRQ
	}
}

type interruptKind int

const (
	interruptNone interruptKind = iota
	interruptIRQ
	interruptNMI
	interruptBRK
)
