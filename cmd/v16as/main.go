// Command v16as assembles V16 assembly source into a raw big-endian
// memory image.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/untodesu/vcpu16/asm"
	"github.com/untodesu/vcpu16/vm"
)

func main() {
	var output string

	root := &cobra.Command{
		Use:   "v16as [input]",
		Short: "Assemble V16 assembly source into a raw memory image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, output)
		},
	}
	root.Flags().StringVarP(&output, "output", "o", "", "output path (or \"stdout\"); required")
	root.MarkFlagRequired("output")
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(args []string, output string) error {
	in := os.Stdin
	filename := "<stdin>"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
		filename = args[0]
	}

	words, err := asm.Assemble(in, filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	out := os.Stdout
	if output != "stdout" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return vm.SaveImage(out, words)
}
