// Command v16dasm disassembles a raw V16 memory image into one
// mnemonic line per instruction.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/untodesu/vcpu16/disasm"
	"github.com/untodesu/vcpu16/vm"
)

func main() {
	var begin, end uint32
	var showAddr, showWords bool

	root := &cobra.Command{
		Use:   "v16dasm <image>",
		Short: "Disassemble a V16 memory image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], uint16(begin), int(end), showAddr, showWords)
		},
	}
	root.Flags().Uint32VarP(&begin, "begin", "b", 0x0000, "start address")
	root.Flags().Uint32VarP(&end, "end", "e", vm.MemSize, "end address (exclusive)")
	root.Flags().BoolVarP(&showAddr, "address", "O", false, "prepend each line with the address")
	root.Flags().BoolVarP(&showWords, "words", "W", false, "prepend each line with the raw words")
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, begin uint16, end int, showAddr, showWords bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	memory, _, err := vm.LoadImage(f)
	if err != nil {
		return err
	}

	opts := disasm.Options{Begin: begin, End: end, ShowAddress: showAddr, ShowWords: showWords}
	return disasm.Disassemble(memory[:], opts, os.Stdout)
}
