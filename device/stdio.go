// Package device implements concrete, headless V16 devices attached to a
// VM's bus: a stdio character device, a buffered keyboard, and an
// in-memory text-mode display. None of these render to a window — the
// harness that owns them decides how (or whether) to show their state.
package device

import (
	"bufio"
	"context"
	"io"
)

// StdioPort is the conventional port reserved for the minimal harness's
// stdio character device.
const StdioPort = 0x00FF

// Stdio is a simple character device: IOW writes a byte to Out, IOR
// drains one byte at a time from a channel fed by a background reader
// so the bus callback never blocks.
type Stdio struct {
	Out io.Writer

	in chan byte
}

// NewStdio returns a Stdio device writing to out. Call StartReading to
// begin feeding it from an input stream.
func NewStdio(out io.Writer) *Stdio {
	return &Stdio{Out: out, in: make(chan byte, 256)}
}

// StartReading drains r one byte at a time into the device's input
// buffer until r is exhausted or ctx is canceled. Run it in its own
// goroutine; IOR only ever polls the buffer, never blocks.
func (s *Stdio) StartReading(ctx context.Context, r io.Reader) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		select {
		case s.in <- b:
		case <-ctx.Done():
			return
		}
	}
}

// IORead returns the next buffered byte, or 0 if none is waiting.
func (s *Stdio) IORead(port uint16) (uint16, bool) {
	if port != StdioPort {
		return 0, false
	}
	select {
	case b := <-s.in:
		return uint16(b), true
	default:
		return 0, true
	}
}

// IOWrite writes the low byte of value as a character.
func (s *Stdio) IOWrite(port, value uint16) {
	if port != StdioPort {
		return
	}
	s.Out.Write([]byte{byte(value)})
}
