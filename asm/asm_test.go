package asm

import (
	"strings"
	"testing"

	"github.com/untodesu/vcpu16/vm"
)

func assemble(t *testing.T, src string) []uint16 {
	t.Helper()
	words, err := Assemble(strings.NewReader(src), "test.s")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return words
}

func TestMovImmediateToRegister(t *testing.T) {
	words := assemble(t, "MOV $0xABCD, %R0\n")
	want := []uint16{vm.EncodeInstruction(vm.Instruction{Opcode: vm.MOV, AImm: true, BReg: vm.R0}), 0xABCD}
	if len(words) != len(want) || words[0] != want[0] || words[1] != want[1] {
		t.Fatalf("got %#v, want %#v", words, want)
	}
}

func TestLabelForwardReference(t *testing.T) {
	src := "CAL $start\n" +
		"HLT\n" +
		"start:\n" +
		"MOV $0x1, %R0\n"
	words := assemble(t, src)
	// CAL $start occupies PC 0-1, HLT is at virtual PC 2, start resolves to PC 3.
	if words[1] != 3 {
		t.Fatalf("expected label to resolve to 3, got %d", words[1])
	}
}

func TestCommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# a comment\n\nNOP # trailing comment\n\n"
	words := assemble(t, src)
	if len(words) != 1 || words[0] != vm.EncodeInstruction(vm.Instruction{Opcode: vm.NOP}) {
		t.Fatalf("got %#v", words)
	}
}

func TestCharLiteral(t *testing.T) {
	words := assemble(t, "MOV $'A', %R0\n")
	if words[1] != uint16('A') {
		t.Fatalf("expected char literal 'A' = %d, got %d", 'A', words[1])
	}
}

func TestUnknownMnemonicIsFatal(t *testing.T) {
	_, err := Assemble(strings.NewReader("FROB %R0, %R1\n"), "bad.s")
	if err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
	if got := err.Error(); got != "bad.s:1: error: unknown mnemonic: FROB" {
		t.Fatalf("unexpected error message: %s", got)
	}
}

func TestUnknownLabelIsFatal(t *testing.T) {
	_, err := Assemble(strings.NewReader("CAL $nowhere\n"), "bad.s")
	if err == nil {
		t.Fatal("expected an error for an unresolved label")
	}
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	src := "MOV $0x2A, %R0\n" +
		"ADD %R1, %R0\n" +
		"HLT\n"
	words := assemble(t, src)

	var got []vm.Instruction
	for i := 0; i < len(words); {
		instr := vm.DecodeInstruction(words[i])
		i++
		if instr.AImm {
			i++
		}
		if instr.BImm {
			i++
		}
		got = append(got, instr)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 decoded instructions, got %d", len(got))
	}
	if got[0].Opcode != vm.MOV || got[1].Opcode != vm.ADD || got[2].Opcode != vm.HLT {
		t.Fatalf("round trip produced unexpected opcodes: %#v", got)
	}
}
