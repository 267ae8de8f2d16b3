package fastcolor

import (
	"strings"
	"testing"
)

func TestFixed(t *testing.T) {
	tests := []struct {
		in    string
		width int
		right bool
		want  string
	}{
		{"abc", 5, false, "abc  "},
		{"abc", 5, true, "  abc"},
		{"abcdef", 4, false, "abcd"},
		{"abcdef", 4, true, "cdef"},
		{"₹100", 6, true, "  ₹100"},
		{"abc", 0, false, ""},
	}
	for _, tt := range tests {
		if got := Fixed(tt.in, tt.width, tt.right); got != tt.want {
			t.Errorf("Fixed(%q, %d, %v) = %q, want %q", tt.in, tt.width, tt.right, got, tt.want)
		}
	}
}

func TestWriteString(t *testing.T) {
	defer func(e bool) { Enabled = e }(Enabled)

	var b strings.Builder
	Enabled = false
	FgRed.WriteStringFixed(&b, "x", 3, false)
	if b.String() != "x  " {
		t.Fatalf("unexpected plain output %q", b.String())
	}

	b.Reset()
	Enabled = true
	FgRed.WriteString(&b, "x")
	if b.String() != "\x1b[31mx\x1b[0m" {
		t.Fatalf("unexpected colored output %q", b.String())
	}
}

func TestHex(t *testing.T) {
	if got := Hex("#ff8000"); got != "\x1b[38;2;255;128;0m" {
		t.Fatalf("unexpected color %q", got)
	}
	if got := Hex("nope"); got != Reset {
		t.Fatalf("expected Reset for bad hex, got %q", got)
	}
}
