// Package harness drives a vm.VM at a configurable clock rate, the
// headless counterpart to the reference SDL harness's per-frame
// "accumulate elapsed time, step while budget remains" loop.
package harness

import (
	"context"
	"time"

	"github.com/untodesu/vcpu16/vm"
)

// DefaultClockHz is used when a caller asks for a rate of zero.
const DefaultClockHz = 100000

// Harness owns a VM and paces Step calls to a target instruction rate.
type Harness struct {
	VM     *vm.VM
	ClockHz int

	// Sleep is the clock source used between accumulator refills;
	// overridable in tests so they don't depend on wall-clock timing.
	Sleep func(time.Duration)
}

// New returns a harness driving vm at clockHz instructions per second.
// A clockHz of zero falls back to DefaultClockHz.
func New(v *vm.VM, clockHz int) *Harness {
	if clockHz <= 0 {
		clockHz = DefaultClockHz
	}
	return &Harness{VM: v, ClockHz: clockHz, Sleep: time.Sleep}
}

// Run steps the VM until it halts or ctx is canceled, pacing execution
// to h.ClockHz instructions per second. It mirrors the reference main
// loop's clock accumulator: each iteration measures elapsed wall time,
// adds it to a budget, and steps while the budget covers at least one
// instruction period, then sleeps for one instruction period.
func (h *Harness) Run(ctx context.Context) error {
	step := time.Second / time.Duration(h.ClockHz)
	if step <= 0 {
		step = time.Nanosecond
	}

	var budget time.Duration
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now := time.Now()
		budget += now.Sub(last)
		last = now

		for budget >= step {
			if !h.VM.Step() {
				return nil
			}
			budget -= step
		}

		if h.Sleep != nil {
			h.Sleep(step)
		}
	}
}
