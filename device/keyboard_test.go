package device

import (
	"testing"

	"github.com/untodesu/vcpu16/vm"
)

func TestKeyboardFIFOOrder(t *testing.T) {
	k := NewKeyboard()
	k.Push('a')
	k.Push('b')
	k.Push('c')

	for _, want := range []uint16{'a', 'b', 'c'} {
		got, ok := k.IORead(KeyboardPort)
		if !ok || got != want {
			t.Fatalf("got %d, %v, want %d", got, ok, want)
		}
	}
	if _, ok := k.IORead(KeyboardPort); ok {
		t.Fatal("expected empty buffer")
	}
}

func TestKeyboardDropsWhenFull(t *testing.T) {
	k := NewKeyboard()
	for i := 0; i < keyboardBufferSize+4; i++ {
		k.Push(uint16(i))
	}
	got, _ := k.IORead(KeyboardPort)
	if got != 0 {
		t.Fatalf("expected oldest key 0, got %d", got)
	}
}

func TestKeyboardPushRaisesInterrupt(t *testing.T) {
	v := vm.New(nil)
	v.LoadAt(0, []uint16{vm.EncodeInstruction(vm.Instruction{Opcode: vm.STI})})
	v.Step()

	k := NewKeyboard()
	k.Bind(v)
	k.Push('x')

	if v.Halted() {
		t.Fatal("unexpected halt")
	}

	// The next step delivers the pending interrupt: R0 receives the
	// keyboard's hardware ID as the message.
	v.Step()
	if got := v.Registers()[vm.R0]; got != KeyboardHardwareID {
		t.Fatalf("expected R0 to hold interrupt message %#x, got %#x", KeyboardHardwareID, got)
	}
}

func TestKeyboardIgnoresOtherPorts(t *testing.T) {
	k := NewKeyboard()
	k.Push('z')
	if _, ok := k.IORead(0x1234); ok {
		t.Fatal("expected unhandled port")
	}
}
