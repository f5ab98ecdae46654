package device

import (
	"bufio"
	"context"
	"io"
	"sync"

	"golang.org/x/term"

	"github.com/untodesu/vcpu16/vm"
)

// Keyboard ports and hardware ID, matching the graphical harness's
// reserved keyboard port.
const (
	KeyboardPort       = 0x000F
	KeyboardHardwareID = 0x000F

	keyboardBufferSize = 16
)

// Special key codes for keys with no printable ASCII form.
const (
	CharBackspace = 0xFF01
	CharReturn    = 0xFF02
	CharInsert    = 0xFF03
	CharDelete    = 0xFF04
	CharUp        = 0xFF05
	CharDown      = 0xFF06
	CharLeft      = 0xFF07
	CharRight     = 0xFF08
	CharShift     = 0xFF09
	CharCtrl      = 0xFF0A
)

// Keyboard is a 16-entry FIFO key buffer. Every accepted key both
// buffers the code and raises a hardware interrupt, mirroring the
// reference keyboard module's "buffer, then interrupt" update. Unlike
// that module's LIFO buffer[--buffer_size] read, IORead drains the
// buffer front-to-back.
type Keyboard struct {
	mu     sync.Mutex
	buffer []uint16
	vm     *vm.VM
}

// NewKeyboard returns an empty keyboard device. Bind attaches it to a VM
// so that Push can raise interrupts.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Bind attaches the keyboard to a VM, enabling interrupt delivery on Push.
func (k *Keyboard) Bind(v *vm.VM) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.vm = v
}

// Push enqueues a key code, dropping it if the buffer is full, and
// raises a hardware interrupt if bound to a VM.
func (k *Keyboard) Push(code uint16) {
	k.mu.Lock()
	if len(k.buffer) < keyboardBufferSize {
		k.buffer = append(k.buffer, code)
	}
	v := k.vm
	k.mu.Unlock()

	if v != nil {
		v.Interrupt(KeyboardHardwareID)
	}
}

// IORead pops the oldest buffered key, if any.
func (k *Keyboard) IORead(port uint16) (uint16, bool) {
	if port != KeyboardPort {
		return 0, false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.buffer) == 0 {
		return 0, false
	}
	code := k.buffer[0]
	k.buffer = k.buffer[1:]
	return code, true
}

// ReadTerminal puts fd into raw mode and pushes one key code per byte
// read from r until ctx is canceled or r returns an error. It restores
// the terminal's prior mode on return. r must be the stream backed by
// fd (typically os.Stdin).
func (k *Keyboard) ReadTerminal(ctx context.Context, fd int, r io.Reader) error {
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, prev)

	br := bufio.NewReader(r)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		b, err := br.ReadByte()
		if err != nil {
			return nil
		}
		k.Push(translateKey(b))
	}
}

func translateKey(b byte) uint16 {
	switch b {
	case 0x7F, 0x08:
		return CharBackspace
	case '\r', '\n':
		return CharReturn
	default:
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		return uint16(b)
	}
}
