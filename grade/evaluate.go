package grade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Evaluate uses the default evaluator.
func Evaluate(name string, in [Subjects]Input) (*Report, error) {
	return Default().Evaluate(name, in)
}

// Evaluate validates the whole input before computing anything: the name
// must have a first and last part, every subject needs a name, and all marks
// must be integers within bounds. The first failing check rejects the report.
func (e *Evaluator) Evaluate(name string, in [Subjects]Input) (*Report, error) {
	name = strings.TrimSpace(name)
	if len(strings.Fields(name)) < 2 {
		return nil, ErrInvalidName
	}

	r := &Report{Name: name}
	for i, s := range in {
		subject := strings.TrimSpace(s.Subject)
		if subject == "" {
			return nil, fmt.Errorf("subject %d: %w", i+1, ErrMissingSubject)
		}
		r.Subjects[i].Subject = subject
	}

	for i, s := range in {
		internal, err := parseMark(s.Internal)
		if err != nil {
			return nil, fmt.Errorf("%s internal: %w", r.Subjects[i].Subject, ErrInvalidMarks)
		}
		external, err := parseMark(s.External)
		if err != nil {
			return nil, fmt.Errorf("%s external: %w", r.Subjects[i].Subject, ErrInvalidMarks)
		}
		r.Subjects[i].Internal = internal
		r.Subjects[i].External = external
	}

	for _, s := range r.Subjects {
		if s.Internal < 0 || s.Internal > e.bounds.Internal || s.External < 0 || s.External > e.bounds.External {
			return nil, fmt.Errorf("%s: %w (internal %d, external %d)", s.Subject, ErrMarksOutOfRange, e.bounds.Internal, e.bounds.External)
		}
	}

	for i := range r.Subjects {
		r.Subjects[i].Total = r.Subjects[i].Internal + r.Subjects[i].External
		r.Total += r.Subjects[i].Total
	}
	r.Average = decimal.NewFromInt(int64(r.Total)).Div(decimal.NewFromInt(Subjects))

	band := e.Band(r.Average)
	r.Grade = band.Grade
	r.Remark = band.Remark
	return r, nil
}

func parseMark(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
