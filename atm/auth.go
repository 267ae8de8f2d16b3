package atm

import (
	"crypto/subtle"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrAccessDenied is returned when a secret is not accepted.
var ErrAccessDenied = errors.New("access denied")

// Authenticator reports whether an entered secret is accepted.
type Authenticator func(secret string) bool

// PIN returns an Authenticator accepting exactly pin. An empty secret is
// never accepted.
func PIN(pin string) Authenticator {
	want := []byte(pin)
	return func(secret string) bool {
		if secret == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(secret), want) == 1
	}
}

// Open creates a ledger only when auth accepts secret.
func Open(auth Authenticator, secret string, account Account, opening decimal.Decimal) (*Ledger, error) {
	if auth == nil || !auth(secret) {
		return nil, ErrAccessDenied
	}
	return NewLedger(account, opening)
}
