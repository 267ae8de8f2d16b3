// Package grade validates a student's marks for a fixed number of subjects and
// derives totals, the average and a grade band.
package grade

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"
)

// Subjects is the number of subjects on every report.
const Subjects = 5

var (
	ErrInvalidName     = errors.New("please enter full student name (first + last)")
	ErrMissingSubject  = errors.New("please enter all subject names")
	ErrInvalidMarks    = errors.New("please enter valid numeric marks")
	ErrMarksOutOfRange = errors.New("marks out of range")
	ErrNoBands         = errors.New("at least one grade band is required")
	ErrInvalidBounds   = errors.New("mark bounds must be positive")
)

// Bounds holds the inclusive upper limits for internal and external marks.
// Lower limits are always 0.
type Bounds struct {
	Internal int
	External int
}

// Band maps averages at or above Min to a grade letter and remark.
type Band struct {
	Min    decimal.Decimal
	Grade  string
	Remark string
}

// Input is one subject row as entered; marks are parsed during evaluation.
type Input struct {
	Subject  string
	Internal string
	External string
}

// SubjectResult is a validated subject row.
type SubjectResult struct {
	Subject  string
	Internal int
	External int
	Total    int
}

// Report is the outcome of a successful evaluation.
type Report struct {
	Name     string
	Subjects [Subjects]SubjectResult
	Total    int
	Average  decimal.Decimal
	Grade    string
	Remark   string
}

// AverageString renders the average with two fractional digits.
func (r *Report) AverageString() string {
	return r.Average.StringFixed(2)
}

// MaxTotal is the highest grand total reachable under b.
func (b Bounds) MaxTotal() int {
	return Subjects * (b.Internal + b.External)
}

// DefaultBounds are 30 internal and 70 external marks per subject.
var DefaultBounds = Bounds{Internal: 30, External: 70}

// DefaultBands returns the A/B/C/D bands.
func DefaultBands() []Band {
	return []Band{
		{Min: decimal.NewFromInt(85), Grade: "A", Remark: "Outstanding"},
		{Min: decimal.NewFromInt(70), Grade: "B", Remark: "Good"},
		{Min: decimal.NewFromInt(50), Grade: "C", Remark: "Average"},
		{Min: decimal.Zero, Grade: "D", Remark: "Needs Improvement"},
	}
}

// Evaluator validates inputs against Bounds and assigns Bands.
type Evaluator struct {
	bounds Bounds
	bands  []Band
}

// NewEvaluator returns an evaluator with bands ordered from the highest
// minimum down.
func NewEvaluator(bounds Bounds, bands []Band) (*Evaluator, error) {
	if bounds.Internal <= 0 || bounds.External <= 0 {
		return nil, ErrInvalidBounds
	}
	if len(bands) == 0 {
		return nil, ErrNoBands
	}
	sorted := slices.Clone(bands)
	slices.SortStableFunc(sorted, func(a, b Band) int {
		return b.Min.Cmp(a.Min)
	})
	return &Evaluator{bounds: bounds, bands: sorted}, nil
}

var defaultEvaluator, _ = NewEvaluator(DefaultBounds, DefaultBands())

// Default returns the evaluator using DefaultBounds and DefaultBands.
func Default() *Evaluator {
	return defaultEvaluator
}

// Bounds returns the mark limits of e.
func (e *Evaluator) Bounds() Bounds {
	return e.bounds
}

// Bands returns the bands of e, highest first.
func (e *Evaluator) Bands() []Band {
	return slices.Clone(e.bands)
}

// Band returns the first band whose minimum avg reaches. Averages below every
// minimum fall into the lowest band.
func (e *Evaluator) Band(avg decimal.Decimal) Band {
	for _, b := range e.bands {
		if avg.GreaterThanOrEqual(b.Min) {
			return b
		}
	}
	return e.bands[len(e.bands)-1]
}
