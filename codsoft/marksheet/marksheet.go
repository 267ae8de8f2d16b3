// Package marksheet decodes batches of student mark sheets.
//
// A sheet is a block of lines, each starting with a one character field code,
// terminated by a line holding only '^':
//
//	NNeha Shinde
//	SMathematics
//	I25
//	E65
//	SPhysics
//	...
//	^
//
// N is the student name, S starts a subject, I and E are the internal and
// external marks of the current subject. Lines starting with '#' are
// comments and a "!Sheet" header line is allowed.
package marksheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nehashinde/codsoft/grade"
)

var (
	ErrUnexpectedEOF      = errors.New("marksheet: unexpected EOF while reading sheet")
	ErrMarkOutsideSubject = errors.New("marksheet: mark given before any subject")
	ErrTooManySubjects    = errors.New("marksheet: too many subjects")
	ErrUnknownField       = errors.New("marksheet: unknown field")
	ErrExpectedName       = errors.New("marksheet: sheet must start with a name line")
)

// Sheet is one decoded sheet. Marks are kept as written so the evaluator can
// report unparseable values.
type Sheet struct {
	Name     string
	Subjects []grade.Input

	// Line is the line number of the sheet's name line.
	Line int

	// RawLines holds the field lines of the sheet.
	RawLines []string
}

// Inputs returns the subjects as evaluator input. Missing subjects are left
// empty so evaluation reports them.
func (s *Sheet) Inputs() (in [grade.Subjects]grade.Input, err error) {
	if len(s.Subjects) > grade.Subjects {
		return in, fmt.Errorf("%w: %d, want %d", ErrTooManySubjects, len(s.Subjects), grade.Subjects)
	}
	copy(in[:], s.Subjects)
	return in, nil
}

// Decoder reads sheets from an input stream.
type Decoder struct {
	r    *bufio.Reader
	line int
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode reads all sheets from the underlying reader.
func (d *Decoder) Decode() ([]*Sheet, error) {
	var sheets []*Sheet
	for {
		line, err := d.readLine()
		if err == io.EOF {
			return sheets, nil
		}
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if skip(line) || line == "!Sheet" {
			continue
		}
		if line[0] != 'N' {
			return nil, d.errorf(ErrExpectedName)
		}

		s, err := d.decodeSheet(line)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
}

func skip(line string) bool {
	return len(line) == 0 || line[0] == '#'
}

// decodeSheet reads fields until the '^' end marker; firstLine is the
// already read name line.
func (d *Decoder) decodeSheet(firstLine string) (*Sheet, error) {
	s := &Sheet{Name: strings.TrimSpace(firstLine[1:]), Line: d.line, RawLines: []string{firstLine}}
	for {
		line, err := d.readLine()
		if err == io.EOF {
			return nil, d.errorf(ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if skip(line) {
			continue
		}
		if line[0] == '^' {
			return s, nil
		}
		if err := s.assignField(line); err != nil {
			return nil, d.errorf(err)
		}
	}
}

func (s *Sheet) assignField(line string) error {
	s.RawLines = append(s.RawLines, line)
	value := strings.TrimSpace(line[1:])

	switch line[0] {
	case 'N':
		s.Name = value
	case 'S':
		s.Subjects = append(s.Subjects, grade.Input{Subject: value})
	case 'I', 'E':
		if len(s.Subjects) == 0 {
			return ErrMarkOutsideSubject
		}
		cur := &s.Subjects[len(s.Subjects)-1]
		if line[0] == 'I' {
			cur.Internal = value
		} else {
			cur.External = value
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, line[:1])
	}
	return nil
}

func (d *Decoder) errorf(err error) error {
	return fmt.Errorf("line %d: %w", d.line, err)
}

// readLine reads a single line without its line ending.
func (d *Decoder) readLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && len(line) == 0 {
		return "", io.EOF
	}
	d.line++
	return strings.TrimRight(line, "\r\n"), nil
}

// Parse decodes every sheet in r.
func Parse(r io.Reader) ([]*Sheet, error) {
	return NewDecoder(r).Decode()
}
