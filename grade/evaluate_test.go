package grade

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func uniform(internal, external string) [Subjects]Input {
	names := [Subjects]string{"Mathematics", "Physics", "Chemistry", "English", "Computer Science"}
	var in [Subjects]Input
	for i := range in {
		in[i] = Input{Subject: names[i], Internal: internal, External: external}
	}
	return in
}

func TestEvaluate(t *testing.T) {
	r, err := Evaluate("Neha Shinde", uniform("25", "65"))
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range r.Subjects {
		if s.Total != 90 {
			t.Fatalf("subject %d: expected total 90, got %d", i, s.Total)
		}
	}
	if r.Total != 450 {
		t.Fatalf("expected grand total 450, got %d", r.Total)
	}
	if r.AverageString() != "90.00" {
		t.Fatalf("expected average 90.00, got %s", r.AverageString())
	}
	if r.Grade != "A" || r.Remark != "Outstanding" {
		t.Fatalf("expected A/Outstanding, got %s/%s", r.Grade, r.Remark)
	}
	if r.Name != "Neha Shinde" {
		t.Fatalf("unexpected name %q", r.Name)
	}
}

func TestEvaluateBands(t *testing.T) {
	tests := []struct {
		name     string
		internal string
		external string
		avg      string
		grade    string
		remark   string
	}{
		{"upper A", "30", "70", "100.00", "A", "Outstanding"},
		{"A boundary", "25", "60", "85.00", "A", "Outstanding"},
		{"just below A", "25", "59", "84.00", "B", "Good"},
		{"B boundary", "20", "50", "70.00", "B", "Good"},
		{"just below B", "20", "49", "69.00", "C", "Average"},
		{"C boundary", "10", "40", "50.00", "C", "Average"},
		{"D", "10", "39", "49.00", "D", "Needs Improvement"},
		{"zero", "0", "0", "0.00", "D", "Needs Improvement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate("Neha Shinde", uniform(tt.internal, tt.external))
			if err != nil {
				t.Fatal(err)
			}
			if r.AverageString() != tt.avg || r.Grade != tt.grade || r.Remark != tt.remark {
				t.Fatalf("expected %s/%s/%s, got %s/%s/%s", tt.avg, tt.grade, tt.remark, r.AverageString(), r.Grade, r.Remark)
			}
		})
	}
}

func TestEvaluateFractionalAverage(t *testing.T) {
	in := uniform("20", "50")
	in[0].External = "51"
	r, err := Evaluate("Neha Shinde", in)
	if err != nil {
		t.Fatal(err)
	}
	if r.Total != 351 || r.AverageString() != "70.20" || r.Grade != "B" {
		t.Fatalf("unexpected report: total=%d avg=%s grade=%s", r.Total, r.AverageString(), r.Grade)
	}
}

func TestEvaluateRejects(t *testing.T) {
	tests := []struct {
		name   string
		person string
		in     func() [Subjects]Input
		want   error
	}{
		{"single name", "Neha", func() [Subjects]Input { return uniform("25", "65") }, ErrInvalidName},
		{"empty name", "   ", func() [Subjects]Input { return uniform("25", "65") }, ErrInvalidName},
		{"single name with bad marks", "Neha", func() [Subjects]Input { return uniform("x", "500") }, ErrInvalidName},
		{"missing subject", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[3].Subject = " "
			return in
		}, ErrMissingSubject},
		{"unparseable internal", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[1].Internal = "twenty"
			return in
		}, ErrInvalidMarks},
		{"empty external", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[4].External = ""
			return in
		}, ErrInvalidMarks},
		{"fractional mark", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[0].Internal = "25.5"
			return in
		}, ErrInvalidMarks},
		{"internal above bound", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[2].Internal = "35"
			return in
		}, ErrMarksOutOfRange},
		{"external above bound", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[2].External = "71"
			return in
		}, ErrMarksOutOfRange},
		{"negative mark", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[0].Internal = "-1"
			return in
		}, ErrMarksOutOfRange},
		{"missing subject checked before marks", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[0].Internal = "99"
			in[4].Subject = ""
			return in
		}, ErrMissingSubject},
		{"parse checked before range", "Neha Shinde", func() [Subjects]Input {
			in := uniform("25", "65")
			in[0].Internal = "99"
			in[4].External = "abc"
			return in
		}, ErrInvalidMarks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Evaluate(tt.person, tt.in())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if r != nil {
				t.Fatalf("expected no report, got %+v", r)
			}
		})
	}
}

func TestNewEvaluator(t *testing.T) {
	if _, err := NewEvaluator(Bounds{}, DefaultBands()); err != ErrInvalidBounds {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
	if _, err := NewEvaluator(DefaultBounds, nil); err != ErrNoBands {
		t.Fatalf("expected ErrNoBands, got %v", err)
	}

	bands := []Band{
		{Min: decimal.NewFromInt(40), Grade: "P", Remark: "Pass"},
		{Min: decimal.NewFromInt(75), Grade: "H", Remark: "Honours"},
	}
	e, err := NewEvaluator(Bounds{Internal: 20, External: 80}, bands)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Bands()[0].Grade; got != "H" {
		t.Fatalf("expected bands sorted highest first, got %s first", got)
	}
	if got := e.Band(decimal.NewFromInt(10)); got.Grade != "P" {
		t.Fatalf("expected lowest band for low average, got %s", got.Grade)
	}

	r, err := e.Evaluate("Neha Shinde", uniform("20", "80"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Grade != "H" || r.Total != e.Bounds().MaxTotal() {
		t.Fatalf("unexpected report %+v", r)
	}
	if _, err := e.Evaluate("Neha Shinde", uniform("25", "65")); !errors.Is(err, ErrMarksOutOfRange) {
		t.Fatalf("expected custom bounds to apply, got %v", err)
	}
}
