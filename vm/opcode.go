// Package vm implements the V16/VCPU-16 execution core: register file,
// flat memory, bounded interrupt queue, device bus, and the fetch-decode-
// execute cycle for the fixed 34-opcode instruction set.
package vm

import "strings"

// Register indices, fixed by the binary contract (§3 of the ISA): general
// purpose R0-R9, index registers RI/RJ, interrupt address IA, overflow/
// extended result OF, stack pointer SP, program counter PC.
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	RI
	RJ
	IA
	OF
	SP
	PC

	RegisterCount
)

// EX is the conventional alias for OF: it receives the high 16 bits of
// every 32-bit arithmetic result.
const EX = OF

// Opcode values, fixed 6-bit assignments matching the original ISA's
// canonical enum.
const (
	NOP = 0x00
	HLT = 0x01
	PTS = 0x02
	PFS = 0x03
	CAL = 0x04
	RET = 0x05
	IOR = 0x06
	IOW = 0x07
	MRD = 0x08
	MWR = 0x09
	CLI = 0x0A
	STI = 0x0B
	INT = 0x0C
	RFI = 0x0D

	MOV = 0x10
	ADD = 0x11
	SUB = 0x12
	MUL = 0x13
	DIV = 0x14
	MOD = 0x15
	SHL = 0x16
	SHR = 0x17
	AND = 0x18
	BOR = 0x19
	XOR = 0x1A
	NOT = 0x1B
	INC = 0x1C
	DEC = 0x1D

	IEQ = 0x20
	INE = 0x21
	IGT = 0x22
	IGE = 0x23
	ILT = 0x24
	ILE = 0x25
)

// RegisterNames lists register mnemonics in index order, shared by the
// assembler and disassembler.
var RegisterNames = [RegisterCount]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7", "R8", "R9",
	"RI", "RJ", "IA", "OF", "SP", "PC",
}

// RegisterByName resolves a register mnemonic, case-insensitively. The
// second return value is false for an unrecognized name.
func RegisterByName(name string) (int, bool) {
	idx, ok := registerIndex[strings.ToUpper(name)]
	return idx, ok
}

// OpcodeNames maps an opcode value to its canonical mnemonic. Opcodes not
// present here are unassigned and decode as silent no-ops.
var OpcodeNames = map[int]string{
	NOP: "NOP", HLT: "HLT", PTS: "PTS", PFS: "PFS", CAL: "CAL", RET: "RET",
	IOR: "IOR", IOW: "IOW", MRD: "MRD", MWR: "MWR", CLI: "CLI", STI: "STI",
	INT: "INT", RFI: "RFI",
	MOV: "MOV", ADD: "ADD", SUB: "SUB", MUL: "MUL", DIV: "DIV", MOD: "MOD",
	SHL: "SHL", SHR: "SHR", AND: "AND", BOR: "BOR", XOR: "XOR", NOT: "NOT",
	INC: "INC", DEC: "DEC",
	IEQ: "IEQ", INE: "INE", IGT: "IGT", IGE: "IGE", ILT: "ILT", ILE: "ILE",
}

// OpcodeByName resolves a mnemonic to its opcode value, case-insensitively.
func OpcodeByName(name string) (int, bool) {
	idx, ok := opcodeByName[strings.ToUpper(name)]
	return idx, ok
}

var (
	registerIndex map[string]int
	opcodeByName  map[string]int
)

func init() {
	registerIndex = make(map[string]int, len(RegisterNames))
	for i, n := range RegisterNames {
		registerIndex[n] = i
	}

	opcodeByName = make(map[string]int, len(OpcodeNames))
	for op, n := range OpcodeNames {
		opcodeByName[n] = op
	}
}
