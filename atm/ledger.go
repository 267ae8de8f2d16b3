package atm

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrNegativeOpening   = errors.New("opening balance cannot be negative")
)

var now = time.Now

// Ledger holds the balance of a single account and its append-only
// transaction log. It is meant to be driven by one caller at a time and does
// no locking.
type Ledger struct {
	account Account
	balance decimal.Decimal
	log     []Entry
}

// NewLedger opens a ledger with the given opening balance. The first log
// entry records the opening.
func NewLedger(account Account, opening decimal.Decimal) (*Ledger, error) {
	if opening.Sign() < 0 {
		return nil, ErrNegativeOpening
	}
	if account.Symbol == "" {
		account.Symbol = DefaultSymbol
	}
	l := &Ledger{account: account, balance: opening}
	l.record(Opened, opening, "Account created with initial balance ")
	return l, nil
}

func (l *Ledger) record(kind EntryKind, amount decimal.Decimal, prefix string) {
	l.log = append(l.log, Entry{
		Time:    now(),
		Kind:    kind,
		Amount:  amount,
		Balance: l.balance,
		Text:    prefix + l.format(amount),
	})
}

func (l *Ledger) format(amount decimal.Decimal) string {
	return l.account.Symbol + amount.StringFixed(2)
}

// Deposit adds amount to the balance. A non-positive amount is rejected with
// ErrInvalidAmount and leaves both balance and log untouched.
func (l *Ledger) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	l.balance = l.balance.Add(amount)
	l.record(Deposit, amount, "Deposited ")
	return nil
}

// Withdraw takes amount from the balance. Amounts that are not positive or
// exceed the balance are rejected without touching balance or log.
func (l *Ledger) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(l.balance) {
		return ErrInsufficientFunds
	}
	l.balance = l.balance.Sub(amount)
	l.record(Withdrawal, amount, "Withdrawn ")
	return nil
}

// Balance returns the current balance. Reading the balance is audited: every
// call appends a "Checked balance" entry to the log.
func (l *Ledger) Balance() decimal.Decimal {
	l.record(BalanceCheck, l.balance, "Checked balance: ")
	return l.balance
}

// AccountDetails returns the holder, masked account number and balance. It
// does not write to the log.
func (l *Ledger) AccountDetails() Details {
	return Details{
		Holder:       l.account.Holder,
		MaskedNumber: MaskAccountNumber(l.account.Number),
		Balance:      l.balance,
		Symbol:       l.account.Symbol,
	}
}

// TransactionHistory returns a copy of the log, oldest entry first.
func (l *Ledger) TransactionHistory() []Entry {
	out := make([]Entry, len(l.log))
	copy(out, l.log)
	return out
}

// Symbol returns the currency symbol used by the ledger.
func (l *Ledger) Symbol() string {
	return l.account.Symbol
}
