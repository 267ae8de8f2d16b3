// Package fastcolor writes fixed-width, optionally colored, columns to a
// terminal.
package fastcolor

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
)

// Color is an ANSI select graphic rendition sequence.
type Color string

const (
	Reset   Color = "\x1b[0m"
	Bold    Color = "\x1b[1m"
	FgRed   Color = "\x1b[31m"
	FgGreen Color = "\x1b[32m"
	FgYell  Color = "\x1b[33m"
	FgBlue  Color = "\x1b[34m"
	FgCyan  Color = "\x1b[36m"
)

// Enabled controls whether escape sequences are written at all. It defaults
// to whether stdout is a terminal.
var Enabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// Hex returns a 24-bit foreground color for a "#rrggbb" string, falling back
// to Reset when hex does not parse.
func Hex(hex string) Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Reset
	}
	r, g, b := c.RGB255()
	return Color(fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b))
}

// WriteString writes s wrapped in c.
func (c Color) WriteString(w io.StringWriter, s string) {
	if Enabled && c != Reset {
		w.WriteString(string(c))
		w.WriteString(s)
		w.WriteString(string(Reset))
		return
	}
	w.WriteString(s)
}

// WriteStringFixed writes s padded or truncated to exactly width runes.
func (c Color) WriteStringFixed(w io.StringWriter, s string, width int, rightJustify bool) {
	c.WriteString(w, Fixed(s, width, rightJustify))
}

// Fixed pads or truncates s to width runes.
func Fixed(s string, width int, rightJustify bool) string {
	if width <= 0 {
		return ""
	}
	n := utf8.RuneCountInString(s)
	if n > width {
		r := []rune(s)
		if rightJustify {
			return string(r[n-width:])
		}
		return string(r[:width])
	}
	pad := strings.Repeat(" ", width-n)
	if rightJustify {
		return pad + s
	}
	return s + pad
}
