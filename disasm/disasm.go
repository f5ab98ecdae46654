// Package disasm implements the V16 disassembler: a linear decode over a
// memory image that renders one mnemonic line per instruction, including
// its immediates, with unknown opcodes and registers rendered as
// placeholder tokens rather than treated as errors.
package disasm

import (
	"fmt"
	"io"

	"github.com/untodesu/vcpu16/vm"
)

// Options controls the disassembler's output columns and address range.
type Options struct {
	Begin       uint16 // inclusive
	End         int    // exclusive; may exceed 0x10000 meaning "to the end"
	ShowAddress bool   // -O: prepend each line with the address
	ShowWords   bool   // -W: prepend each line with the raw words
}

// Disassemble walks memory[Begin:End], decoding one instruction at a
// time and writing one line per instruction to w.
func Disassemble(memory []uint16, opts Options, w io.Writer) error {
	end := opts.End
	if end > len(memory) {
		end = len(memory)
	}

	for addr := int(opts.Begin); addr < end; {
		word := memory[addr]
		instr := vm.DecodeInstruction(word)

		var imms [2]uint16
		var haveA, haveB bool
		i := addr + 1
		if instr.AImm && i < end {
			imms[0] = memory[i]
			haveA = true
			i++
		}
		if instr.BImm && i < end {
			imms[1] = memory[i]
			haveB = true
			i++
		}

		if _, err := io.WriteString(w, formatLine(uint16(addr), word, instr, imms, haveA, haveB, opts)); err != nil {
			return err
		}
		addr = i
	}
	return nil
}

func formatLine(addr, word uint16, instr vm.Instruction, imms [2]uint16, haveA, haveB bool, opts Options) string {
	var line string
	if opts.ShowAddress {
		line += fmt.Sprintf("%04X  ", addr)
	}
	if opts.ShowWords {
		line += fmt.Sprintf("%04X ", word)
		line += immColumn(haveA, imms[0])
		line += immColumn(haveB, imms[1])
		line += " "
	}

	line += mnemonic(instr.Opcode) + " "
	line += operandString(instr.AImm, instr.AReg, imms[0])
	line += ", "
	line += operandString(instr.BImm, instr.BReg, imms[1])
	return line + "\n"
}

func immColumn(have bool, word uint16) string {
	if !have {
		return "**** "
	}
	return fmt.Sprintf("%04X ", word)
}

func operandString(isImm bool, reg int, imm uint16) string {
	if isImm {
		return fmt.Sprintf("$0x%04X", imm)
	}
	return "%" + register(reg)
}

func mnemonic(opcode int) string {
	if name, ok := vm.OpcodeNames[opcode]; ok {
		return name
	}
	return "???"
}

func register(reg int) string {
	if reg >= 0 && reg < len(vm.RegisterNames) {
		return vm.RegisterNames[reg]
	}
	return "??"
}
