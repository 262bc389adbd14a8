//go:build unix

package hostio

import (
	"time"

	"golang.org/x/sys/unix"
)

// Pacer throttles a run loop to real time by sleeping off the gap
// between the wall-clock time a batch of cycles was supposed to take and
// how long it actually took, using unix.Nanosleep for sub-millisecond
// precision rather than time.Sleep's coarser scheduler-tick granularity.
type Pacer struct {
	cyclesPerSecond float64
	last            time.Time
}

// NewPacer returns a Pacer for a clock running at cyclesPerSecond.
func NewPacer(cyclesPerSecond float64) *Pacer {
	return &Pacer{cyclesPerSecond: cyclesPerSecond, last: time.Now()}
}

// Reset forgets any accumulated pacing debt, used after a Suspend/Resume
// or warp-mode transition so the next Wait doesn't try to make up for
// time spent paused or running unthrottled.
func (p *Pacer) Reset() { p.last = time.Now() }

// Wait blocks until cycles worth of wall-clock time has elapsed since the
// last call (or since NewPacer/Reset), sleeping via Nanosleep when the
// batch finished early and returning immediately (no sleep, no error) if
// it's already running behind.
func (p *Pacer) Wait(cycles uint64) error {
	want := time.Duration(float64(cycles) / p.cyclesPerSecond * float64(time.Second))
	elapsed := time.Since(p.last)
	defer func() { p.last = time.Now() }()

	remaining := want - elapsed
	if remaining <= 0 {
		return nil
	}

	ts := unix.NsecToTimespec(remaining.Nanoseconds())
	for {
		rem := ts
		err := unix.Nanosleep(&ts, &rem)
		if err == nil {
			return nil
		}
		if err == unix.EINTR {
			ts = rem
			continue
		}
		return err
	}
}
