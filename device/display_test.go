package device

import (
	"strings"
	"testing"
)

func TestTextDisplayDefaultOffsets(t *testing.T) {
	d := NewTextDisplay()
	v, _ := d.IORead(PortTextOffset)
	if v != defaultTextOffset {
		t.Fatalf("got %#x, want %#x", v, defaultTextOffset)
	}
	v, _ = d.IORead(PortCharOffset)
	if v != defaultCharOffset {
		t.Fatalf("got %#x, want %#x", v, defaultCharOffset)
	}
}

func TestTextDisplayRelocate(t *testing.T) {
	d := NewTextDisplay()
	d.IOWrite(PortTextOffset, 0x2000)
	v, _ := d.IORead(PortTextOffset)
	if v != 0x2000 {
		t.Fatalf("got %#x, want 0x2000", v)
	}
}

func TestTextDisplayRenderPrintsCharacters(t *testing.T) {
	d := NewTextDisplay()
	d.IOWrite(PortTextOffset, 0)

	memory := make([]uint16, DisplayWidth*DisplayHeight)
	memory[0] = uint16('H')
	memory[1] = uint16('i')

	var buf strings.Builder
	if err := d.Render(memory, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "Hi") {
		t.Fatalf("expected first line to start with Hi, got %q", lines[0])
	}
}
