package atm

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is used when an Account does not name a currency symbol.
const DefaultSymbol = "₹"

// Account identifies the holder of a ledger. Both fields are fixed once the
// ledger is created.
type Account struct {
	Holder string
	Number string

	// Symbol prefixes every amount written to the transaction log.
	Symbol string
}

// EntryKind tells what produced a log entry.
type EntryKind int

const (
	Opened EntryKind = iota
	Deposit
	Withdrawal
	BalanceCheck
)

func (k EntryKind) String() string {
	switch k {
	case Opened:
		return "opened"
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case BalanceCheck:
		return "balance"
	}
	return fmt.Sprintf("EntryKind(%d)", int(k))
}

// Entry is one line of the transaction log. Amount is the amount moved (the
// balance read for a BalanceCheck), Balance the balance after the operation.
type Entry struct {
	Time    time.Time
	Kind    EntryKind
	Amount  decimal.Decimal
	Balance decimal.Decimal
	Text    string
}

func (e Entry) String() string {
	return e.Text
}

// Details is the summary shown by AccountDetails.
type Details struct {
	Holder       string
	MaskedNumber string
	Balance      decimal.Decimal
	Symbol       string
}

func (d Details) String() string {
	return "Account Holder: " + d.Holder +
		"\nAccount Number: " + d.MaskedNumber +
		"\nCurrent Balance: " + d.Symbol + d.Balance.StringFixed(2)
}

// MaskAccountNumber keeps the first 3 and last 2 characters of numbers longer
// than 5 characters and replaces the middle with a fixed 4 character mask.
// Shorter numbers are fully masked.
func MaskAccountNumber(number string) string {
	r := []rune(number)
	if len(r) > 5 {
		return string(r[:3]) + "****" + string(r[len(r)-2:])
	}
	return "****"
}
