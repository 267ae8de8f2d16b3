// Package currency converts amounts between a fixed set of currencies using a
// rate table generated once from a few anchor-relative base rates.
package currency

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNoAnchor          = errors.New("currency: anchor currency is required")
	ErrNonPositiveRate   = errors.New("currency: rate must be positive")
	ErrAnchorRate        = errors.New("currency: anchor rate must be 1")
	ErrUnknownCurrency   = errors.New("currency: unknown currency")
	ErrDuplicateCurrency = errors.New("currency: currency defined twice")
)

// Code is an ISO 4217 style currency code such as "USD".
type Code string

// ParseCode normalizes user input to a Code.
func ParseCode(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}

// Pair is an ordered currency pair.
type Pair struct {
	From Code
	To   Code
}

func (p Pair) String() string {
	return string(p.From) + "→" + string(p.To)
}

// Swap returns the reverse pair.
func (p Pair) Swap() Pair {
	return Pair{From: p.To, To: p.From}
}

// Quote adds a currency priced against another one instead of the anchor:
// one unit of Via buys Units of Code.
type Quote struct {
	Code  Code
	Via   Code
	Units decimal.Decimal
}

// Table is an immutable rate table holding a rate for every ordered pair of
// its currencies, identity pairs included.
type Table struct {
	anchor Code
	codes  []Code
	rates  map[Pair]decimal.Decimal
}

// New builds a table from base rates expressed as units of anchor per one
// unit of each currency. Quotes are resolved to anchor-relative rates first.
// Reverse rates are reciprocals and cross rates are ratios of the
// anchor-relative rates. Consistency between base rates is not checked.
func New(anchor Code, base map[Code]decimal.Decimal, quotes ...Quote) (*Table, error) {
	if anchor == "" {
		return nil, ErrNoAnchor
	}

	perAnchor := make(map[Code]decimal.Decimal, len(base)+len(quotes)+1)
	for code, rate := range base {
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%w: %s=%s", ErrNonPositiveRate, code, rate)
		}
		if code == anchor && !rate.Equal(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: %s=%s", ErrAnchorRate, code, rate)
		}
		perAnchor[code] = rate
	}
	perAnchor[anchor] = decimal.NewFromInt(1)

	for _, q := range quotes {
		if _, ok := perAnchor[q.Code]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCurrency, q.Code)
		}
		via, ok := perAnchor[q.Via]
		if !ok {
			return nil, fmt.Errorf("%w: %s quoted via %s", ErrUnknownCurrency, q.Code, q.Via)
		}
		if !q.Units.IsPositive() {
			return nil, fmt.Errorf("%w: 1 %s = %s %s", ErrNonPositiveRate, q.Via, q.Units, q.Code)
		}
		perAnchor[q.Code] = via.Div(q.Units)
	}

	t := &Table{
		anchor: anchor,
		rates:  make(map[Pair]decimal.Decimal, len(perAnchor)*len(perAnchor)),
	}
	for code := range perAnchor {
		t.codes = append(t.codes, code)
	}
	slices.Sort(t.codes)

	one := decimal.NewFromInt(1)
	for _, from := range t.codes {
		for _, to := range t.codes {
			var rate decimal.Decimal
			switch {
			case from == to:
				rate = one
			case to == anchor:
				rate = perAnchor[from]
			case from == anchor:
				rate = one.Div(perAnchor[to])
			default:
				rate = perAnchor[from].Div(perAnchor[to])
			}
			t.rates[Pair{From: from, To: to}] = rate
		}
	}
	return t, nil
}

// Anchor returns the currency all base rates were expressed in.
func (t *Table) Anchor() Code {
	return t.anchor
}

// Codes returns the supported currencies in sorted order.
func (t *Table) Codes() []Code {
	return slices.Clone(t.codes)
}

// Supports reports whether code is in the table.
func (t *Table) Supports(code Code) bool {
	_, ok := t.rates[Pair{From: code, To: code}]
	return ok
}

// Rate returns the rate for p. The boolean is false when the pair is not
// supported.
func (t *Table) Rate(p Pair) (decimal.Decimal, bool) {
	rate, ok := t.rates[p]
	return rate, ok
}

// Convert multiplies amount by the from→to rate. No rounding is applied. The
// boolean is false, and the amount meaningless, when the pair is unsupported.
func (t *Table) Convert(amount decimal.Decimal, from, to Code) (decimal.Decimal, bool) {
	rate, ok := t.rates[Pair{From: from, To: to}]
	if !ok {
		return decimal.Decimal{}, false
	}
	return amount.Mul(rate), true
}
