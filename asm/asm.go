// Package asm implements the two-pass V16 assembler: pass 1 scans label
// addresses against a virtual program counter, pass 2 resolves mnemonics,
// registers, and labels and emits big-endian instruction words.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/untodesu/vcpu16/vm"
)

// Error is a fatal per-line assembly failure, carrying enough context to
// reproduce the reference toolchain's "file:line: error: message" output.
type Error struct {
	File string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: error: %s", e.File, e.Line, e.Msg)
}

func errf(file string, line int, format string, args ...any) error {
	return &Error{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

type sourceLine struct {
	no       int
	label    string
	mnemonic string
	operands []string
}

// Assemble reads a V16 assembly source and returns the assembled image
// as a sequence of 16-bit words (instruction word then 0-2 immediates,
// repeated). filename is used only to annotate error messages.
func Assemble(r io.Reader, filename string) ([]uint16, error) {
	lines, err := readLines(r, filename)
	if err != nil {
		return nil, err
	}

	labels, err := scanLabels(lines)
	if err != nil {
		return nil, err
	}

	return emit(lines, labels, filename)
}

func readLines(r io.Reader, filename string) ([]sourceLine, error) {
	var out []sourceLine
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if idx := strings.IndexByte(raw, '#'); idx >= 0 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		label := ""
		if idx := strings.IndexByte(raw, ':'); idx >= 0 {
			label = strings.TrimSpace(raw[:idx])
			raw = strings.TrimSpace(raw[idx+1:])
			if raw == "" {
				out = append(out, sourceLine{no: lineNo, label: label})
				continue
			}
		}

		fields := strings.SplitN(raw, " ", 2)
		mnemonic := fields[0]
		var operands []string
		if len(fields) > 1 {
			for _, op := range strings.Split(fields[1], ",") {
				op = strings.TrimSpace(op)
				if op != "" {
					operands = append(operands, op)
				}
			}
		}

		out = append(out, sourceLine{no: lineNo, label: label, mnemonic: mnemonic, operands: operands})
	}
	if err := scanner.Err(); err != nil {
		return nil, errf(filename, lineNo, "%s", err)
	}
	return out, nil
}

// scanLabels is pass 1: walk the source tracking a virtual PC, recording
// each label's address. A label that collides with a mnemonic or
// register name is ignored for collision avoidance, matching the
// reference assembler.
func scanLabels(lines []sourceLine) (map[string]uint16, error) {
	labels := make(map[string]uint16)
	virtualPC := uint16(0)

	for _, ln := range lines {
		if ln.label != "" {
			if _, isOpcode := vm.OpcodeByName(ln.label); !isOpcode {
				if _, isReg := vm.RegisterByName(ln.label); !isReg {
					labels[ln.label] = virtualPC
				}
			}
		}
		if ln.mnemonic == "" {
			continue
		}
		virtualPC++
		for _, op := range ln.operands {
			if strings.HasPrefix(op, "$") {
				virtualPC++
			}
		}
	}
	return labels, nil
}

// emit is pass 2: resolve each instruction line into a word plus
// trailing immediates.
func emit(lines []sourceLine, labels map[string]uint16, filename string) ([]uint16, error) {
	var words []uint16

	for _, ln := range lines {
		if ln.mnemonic == "" {
			continue
		}

		opcode, ok := vm.OpcodeByName(ln.mnemonic)
		if !ok {
			return nil, errf(filename, ln.no, "unknown mnemonic: %s", ln.mnemonic)
		}
		if len(ln.operands) > 2 {
			return nil, errf(filename, ln.no, "too many operands for %s", ln.mnemonic)
		}

		instr := vm.Instruction{Opcode: opcode}
		var imms []uint16

		for i, op := range ln.operands {
			imm, reg, isImm, err := resolveOperand(op, labels, filename, ln.no)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				instr.AImm = isImm
				instr.AReg = reg
			} else {
				instr.BImm = isImm
				instr.BReg = reg
			}
			if isImm {
				imms = append(imms, imm)
			}
		}

		words = append(words, vm.EncodeInstruction(instr))
		words = append(words, imms...)
	}

	return words, nil
}

func resolveOperand(tok string, labels map[string]uint16, filename string, lineNo int) (imm uint16, reg int, isImm bool, err error) {
	if tok == "" {
		return 0, 0, false, errf(filename, lineNo, "empty operand")
	}
	prefix, rest := tok[0], tok[1:]
	switch prefix {
	case '$':
		v, err := resolveImmediate(rest, labels, filename, lineNo)
		return v, 0, true, err
	case '%':
		r, ok := vm.RegisterByName(rest)
		if !ok {
			return 0, 0, false, errf(filename, lineNo, "unknown register: %s", rest)
		}
		return 0, r, false, nil
	default:
		return 0, 0, false, errf(filename, lineNo, "unknown operand prefix: %c", prefix)
	}
}

func resolveImmediate(tok string, labels map[string]uint16, filename string, lineNo int) (uint16, error) {
	if len(tok) == 3 && tok[0] == '\'' && tok[2] == '\'' {
		return uint16(tok[1]), nil
	}
	if isLetter(tok[0]) {
		pc, ok := labels[tok]
		if !ok {
			return 0, errf(filename, lineNo, "unknown label: %s", tok)
		}
		return pc, nil
	}

	base := 10
	switch {
	case strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X"):
		tok, base = tok[2:], 16
	case strings.HasPrefix(tok, "0b") || strings.HasPrefix(tok, "0B"):
		tok, base = tok[2:], 2
	}
	n, err := strconv.ParseUint(tok, base, 16)
	if err != nil {
		return 0, errf(filename, lineNo, "invalid numeric literal: %s", tok)
	}
	return uint16(n), nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
