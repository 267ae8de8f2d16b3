// Package prompt reads answers typed by the user. Secrets are read without
// echo when the input is a terminal.
package prompt

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt reads lines from an input and writes labels to an output.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// New returns a Prompt over in and out. When in is a terminal, Secret
// disables echo.
func New(in io.Reader, out io.Writer) *Prompt {
	p := &Prompt{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Line prints label and returns the next input line without surrounding
// whitespace. io.EOF is returned only when no further input exists.
func (p *Prompt) Line(label string) (string, error) {
	if label != "" {
		io.WriteString(p.out, label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret prints label and reads a line without echoing it on terminals.
func (p *Prompt) Secret(label string) (string, error) {
	if !p.tty {
		return p.Line(label)
	}
	io.WriteString(p.out, label)
	b, err := term.ReadPassword(p.fd)
	io.WriteString(p.out, "\n")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Width returns the terminal width of out, or fallback when out is not a
// terminal.
func Width(out io.Writer, fallback int) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
