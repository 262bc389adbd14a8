// Package conformance runs the Klaus Dormann 6502 functional test suite
// against the cpu package (spec.md §8, scenario 2). The ROM image itself
// is not vendored here; callers load it from disk and hand the bytes to
// Run.
package conformance

import (
	"fmt"

	"github.com/vc64/core/cpu"
)

// successTrap is the address the Klaus Dormann test suite jumps to and
// loops on forever once every test has passed. A run that reaches any
// other infinite loop (PC stops advancing) has failed the test whose
// number is baked into that address by the ROM's own convention.
const successTrap = 0x3469

// flatRAM is a plain 64KiB address space, which is all the functional
// test ROM expects: no I/O, no banking, just RAM.
type flatRAM struct {
	data [65536]uint8
}

func (m *flatRAM) Peek(addr uint16) uint8        { return m.data[addr] }
func (m *flatRAM) Poke(addr uint16, value uint8) { m.data[addr] = value }

// Result reports how a conformance run ended.
type Result struct {
	Passed      bool
	Cycles      uint64
	HaltPC      uint16
	LoopedAtPC  uint16
}

// Run loads image at loadAddr, starts execution at startAddr, and steps
// the CPU until it reaches successTrap, gets stuck in any other
// self-loop (PC revisits the same address enough times in a row to be
// considered stalled), or exceeds maxCycles.
func Run(image []byte, loadAddr, startAddr uint16, maxCycles uint64) (Result, error) {
	mem := &flatRAM{}
	copy(mem.data[loadAddr:], image)

	c := cpu.NewCPU()
	c.Plumb(mem)
	c.NoInterrupts = true
	c.Reset()
	c.PCSet(startAddr)

	var lastPC uint16
	var repeatCount int

	for cycles := uint64(0); cycles < maxCycles; cycles++ {
		pc := c.GetPC()
		if err := c.Cycle(); err != nil {
			return Result{Passed: false, Cycles: cycles, HaltPC: pc}, fmt.Errorf("conformance: %w", err)
		}

		if c.GetPC() == pc {
			if pc == lastPC {
				repeatCount++
			} else {
				repeatCount = 1
			}
			lastPC = pc
			if repeatCount > 3 {
				return Result{
					Passed:     pc == successTrap,
					Cycles:     cycles,
					HaltPC:     pc,
					LoopedAtPC: pc,
				}, nil
			}
		} else {
			repeatCount = 0
		}
	}

	return Result{Passed: false, Cycles: maxCycles, HaltPC: c.GetPC()}, fmt.Errorf("conformance: exceeded %d cycles without reaching a stable loop", maxCycles)
}
