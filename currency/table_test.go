package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New("INR", map[Code]decimal.Decimal{
		"USD": dec("83.50"),
		"EUR": dec("90.00"),
		"GBP": dec("105.50"),
	}, Quote{Code: "JPY", Via: "USD", Units: dec("150")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tbl
}

func TestTableIsComplete(t *testing.T) {
	tbl := testTable(t)
	codes := tbl.Codes()
	want := []Code{"EUR", "GBP", "INR", "JPY", "USD"}
	if len(codes) != len(want) {
		t.Fatalf("expected codes %v, got %v", want, codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("expected codes %v, got %v", want, codes)
		}
	}

	for _, from := range codes {
		for _, to := range codes {
			rate, ok := tbl.Rate(Pair{From: from, To: to})
			if !ok {
				t.Fatalf("missing rate %s→%s", from, to)
			}
			if !rate.IsPositive() {
				t.Fatalf("rate %s→%s not positive: %s", from, to, rate)
			}
		}
	}
}

func TestDerivedRates(t *testing.T) {
	tbl := testTable(t)
	tests := []struct {
		pair Pair
		want decimal.Decimal
	}{
		{Pair{"USD", "INR"}, dec("83.50")},
		{Pair{"USD", "USD"}, dec("1")},
		{Pair{"USD", "JPY"}, dec("150")},
		{Pair{"INR", "EUR"}, decimal.NewFromInt(1).Div(dec("90"))},
		{Pair{"EUR", "GBP"}, dec("90").Div(dec("105.50"))},
		{Pair{"USD", "EUR"}, dec("83.50").Div(dec("90"))},
	}
	tolerance := dec("0.000000001")
	for _, tt := range tests {
		got, ok := tbl.Rate(tt.pair)
		if !ok {
			t.Fatalf("%s unsupported", tt.pair)
		}
		if got.Sub(tt.want).Abs().GreaterThan(tolerance) {
			t.Errorf("%s: expected %s, got %s", tt.pair, tt.want, got)
		}
	}
}

func TestConvert(t *testing.T) {
	tbl := testTable(t)

	got, ok := tbl.Convert(dec("100"), "USD", "INR")
	if !ok || got.StringFixed(2) != "8350.00" {
		t.Fatalf("expected 8350.00, got %s (ok=%v)", got, ok)
	}

	if _, ok := tbl.Convert(dec("100"), "USD", "CHF"); ok {
		t.Fatal("USD→CHF must be unsupported")
	}
	if _, ok := tbl.Convert(dec("100"), "", "INR"); ok {
		t.Fatal("empty code must be unsupported")
	}
}

func TestConvertIdentityAndRoundTrip(t *testing.T) {
	tbl := testTable(t)
	amounts := []decimal.Decimal{dec("0"), dec("1"), dec("123.45"), dec("987654.321")}
	tolerance := dec("0.0000001")

	for _, x := range tbl.Codes() {
		for _, a := range amounts {
			same, ok := tbl.Convert(a, x, x)
			if !ok || !same.Equal(a) {
				t.Fatalf("identity %s: expected %s, got %s", x, a, same)
			}
		}
		for _, y := range tbl.Codes() {
			for _, a := range amounts {
				there, _ := tbl.Convert(a, x, y)
				back, ok := tbl.Convert(there, y, x)
				if !ok {
					t.Fatalf("%s→%s unsupported", y, x)
				}
				if back.Sub(a).Abs().GreaterThan(tolerance) {
					t.Errorf("round trip %s→%s→%s of %s gave %s", x, y, x, a, back)
				}
			}
		}
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		anchor Code
		base   map[Code]decimal.Decimal
		quotes []Quote
		want   error
	}{
		{"no anchor", "", map[Code]decimal.Decimal{"USD": dec("1")}, nil, ErrNoAnchor},
		{"zero rate", "INR", map[Code]decimal.Decimal{"USD": dec("0")}, nil, ErrNonPositiveRate},
		{"negative rate", "INR", map[Code]decimal.Decimal{"USD": dec("-2")}, nil, ErrNonPositiveRate},
		{"anchor rate", "INR", map[Code]decimal.Decimal{"INR": dec("2")}, nil, ErrAnchorRate},
		{"quote via unknown", "INR", nil, []Quote{{Code: "JPY", Via: "USD", Units: dec("150")}}, ErrUnknownCurrency},
		{"quote zero units", "INR", map[Code]decimal.Decimal{"USD": dec("83.5")}, []Quote{{Code: "JPY", Via: "USD"}}, ErrNonPositiveRate},
		{"quote duplicates base", "INR", map[Code]decimal.Decimal{"USD": dec("83.5")}, []Quote{{Code: "USD", Via: "INR", Units: dec("2")}}, ErrDuplicateCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.anchor, tt.base, tt.quotes...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAnchorOnlyTable(t *testing.T) {
	tbl, err := New("INR", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !tbl.Supports("INR") || tbl.Supports("USD") {
		t.Fatalf("unexpected codes %v", tbl.Codes())
	}
	if tbl.Anchor() != "INR" {
		t.Fatalf("unexpected anchor %s", tbl.Anchor())
	}
}

func TestPair(t *testing.T) {
	p := Pair{From: "USD", To: "INR"}
	if p.String() != "USD→INR" {
		t.Fatalf("unexpected pair string %q", p.String())
	}
	if p.Swap() != (Pair{From: "INR", To: "USD"}) {
		t.Fatalf("unexpected swap %v", p.Swap())
	}
	if ParseCode(" usd ") != "USD" {
		t.Fatal("ParseCode must normalize input")
	}
}
