package machine

import (
	"github.com/vc64/core/cia"
	"github.com/vc64/core/cpu"
	"github.com/vc64/core/hostio"
	"github.com/vc64/core/mem"
	"github.com/vc64/core/snapshot"
)

// cpu.CPU, mem.Memory and cia.CIA each implement encoding.BinaryMarshaler/
// BinaryUnmarshaler (their own snapshot.go files) but have no Tag method,
// since that tag is a property of where the component sits in this
// machine's ownership tree, not of the component itself. These thin
// wrappers supply it.

type cpuComponent struct {
	tag string
	c   *cpu.CPU
}

func (w cpuComponent) Tag() string                          { return w.tag }
func (w cpuComponent) MarshalBinary() ([]byte, error)        { return w.c.MarshalBinary() }
func (w cpuComponent) UnmarshalBinary(data []byte) error     { return w.c.UnmarshalBinary(data) }

type memComponent struct {
	m *mem.Memory
}

func (memComponent) Tag() string                          { return "mem" }
func (w memComponent) MarshalBinary() ([]byte, error)      { return w.m.MarshalBinary() }
func (w memComponent) UnmarshalBinary(data []byte) error   { return w.m.UnmarshalBinary(data) }

type ciaComponent struct {
	tag string
	c   *cia.CIA
}

func (w ciaComponent) Tag() string                        { return w.tag }
func (w ciaComponent) MarshalBinary() ([]byte, error)      { return w.c.MarshalBinary() }
func (w ciaComponent) UnmarshalBinary(data []byte) error   { return w.c.UnmarshalBinary(data) }

var _ snapshot.Component = cpuComponent{}
var _ snapshot.Component = memComponent{}
var _ snapshot.Component = ciaComponent{}

// Snapshot suspends cycle advancement, walks the ownership tree in a
// fixed order (CPU, memory, CIA1, CIA2), and returns the resulting
// versioned binary image, per spec.md §3.2/§6.
func (m *Machine) Snapshot() ([]byte, error) {
	m.Suspend()
	defer m.Resume() //nolint:errcheck

	w := snapshot.NewWriter()
	w.Put(cpuComponent{"cpu", m.cpu})
	w.Put(memComponent{m.mem})
	w.Put(ciaComponent{"cia1", m.cia1})
	w.Put(ciaComponent{"cia2", m.cia2})
	m.Queue.Put(hostio.MsgSnapshotTaken, 0)
	return w.Bytes(), nil
}

// Restore suspends cycle advancement, validates the image's version, and
// restores each component present in it; a component whose section is
// missing from the image is left unchanged (forward compatibility).
func (m *Machine) Restore(image []byte) error {
	m.Suspend()
	defer m.Resume() //nolint:errcheck

	r, err := snapshot.NewReader(image)
	if err != nil {
		return err
	}

	if err := r.Restore(cpuComponent{"cpu", m.cpu}); err != nil {
		return err
	}
	if err := r.Restore(memComponent{m.mem}); err != nil {
		return err
	}
	if err := r.Restore(ciaComponent{"cia1", m.cia1}); err != nil {
		return err
	}
	if err := r.Restore(ciaComponent{"cia2", m.cia2}); err != nil {
		return err
	}

	m.Queue.Put(hostio.MsgSnapshotRestored, 0)
	return nil
}
