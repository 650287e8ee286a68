package hexdump

import (
	"strings"
	"testing"
)

func TestToHexSingleLineUppercase(t *testing.T) {
	got := ToHex([]byte{0x01, 0x02, 0xAB, 0xff})
	if got != "01 02 AB FF" {
		t.Fatalf("unexpected hex: %q", got)
	}
}

func TestToHexEmpty(t *testing.T) {
	if got := ToHex(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestDumpIncludesOffsets(t *testing.T) {
	out := Dump([]byte("abcdefghijklmnopq"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "00000010") {
		t.Fatalf("expected second line at offset 0x10, got %q", lines[1])
	}
}
