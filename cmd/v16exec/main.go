// Command v16exec loads a V16 memory image and runs it against a
// minimal headless device set: a stdio character device on port
// 0x00FF, a keyboard on port 0x000F fed from the controlling terminal,
// and a text-mode display on ports 0x1F01/0x1F02 rendered to stdout on
// halt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/untodesu/vcpu16/device"
	"github.com/untodesu/vcpu16/harness"
	"github.com/untodesu/vcpu16/vm"
)

func main() {
	root := &cobra.Command{
		Use:   "v16exec <image> [clock-hz]",
		Short: "Run a V16 memory image",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clockHz := 0
			if len(args) == 2 {
				hz, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid clock frequency: %s", args[1])
				}
				clockHz = hz
			}
			return run(args[0], clockHz)
		},
	}
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, clockHz int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	memory, words, err := vm.LoadImage(f)
	f.Close()
	if err != nil {
		return err
	}

	bus := &vm.Bus{}
	stdio := device.NewStdio(os.Stdout)
	keyboard := device.NewKeyboard()
	display := device.NewTextDisplay()
	bus.Attach(vm.Device{Read: stdio.IORead, Write: stdio.IOWrite})
	bus.Attach(vm.Device{Read: keyboard.IORead})
	bus.Attach(vm.Device{Read: display.IORead, Write: display.IOWrite})

	machine := vm.New(bus)
	machine.LoadAt(0, memory[:words])
	keyboard.Bind(machine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Raw keystrokes go to the keyboard device; stdio's own input feed
	// is left unstarted so both devices don't race over the same
	// controlling terminal fd. stdio keeps working as an output-only
	// character port in this harness.
	go keyboard.ReadTerminal(ctx, int(os.Stdin.Fd()), os.Stdin)

	h := harness.New(machine, clockHz)
	if err := h.Run(ctx); err != nil && err != context.Canceled {
		return err
	}

	return display.Render(machine.Memory(0, vm.MemSize), os.Stdout)
}
