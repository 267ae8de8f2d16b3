// Package pinguard checks secrets for the ATM shell, spacing out attempts and
// locking further checks after repeated failures.
package pinguard

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/nehashinde/codsoft/atm"
)

// ErrLocked is returned while repeated failures keep the guard locked.
var ErrLocked = errors.New("too many failed attempts, try again later")

const failuresKey = "failures"

// Guard wraps an atm.Authenticator.
type Guard struct {
	auth     atm.Authenticator
	max      int
	lockout  time.Duration
	failures *cache.Cache
	limiter  *rate.Limiter
}

// New returns a Guard that locks for lockout after max consecutive failures
// and allows at most one attempt per interval. A zero interval disables
// spacing. lockout must be positive; a non-positive lockout never expires.
func New(auth atm.Authenticator, max int, lockout, interval time.Duration) *Guard {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Guard{
		auth:     auth,
		max:      max,
		lockout:  lockout,
		failures: cache.New(lockout, lockout),
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Check returns nil when secret is accepted, atm.ErrAccessDenied when it is
// not, and ErrLocked without consulting the authenticator while locked.
func (g *Guard) Check(ctx context.Context, secret string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	if g.Failures() >= g.max {
		return ErrLocked
	}
	if g.auth != nil && g.auth(secret) {
		g.failures.Delete(failuresKey)
		return nil
	}
	n, err := g.failures.IncrementInt(failuresKey, 1)
	if err != nil {
		n = 1
		g.failures.SetDefault(failuresKey, n)
	}
	if n >= g.max {
		// the lock runs for a full lockout from the failure that set it
		g.failures.Set(failuresKey, n, g.lockout)
	}
	return atm.ErrAccessDenied
}

// Failures is the number of failed attempts counted toward the lockout.
func (g *Guard) Failures() int {
	n, ok := g.failures.Get(failuresKey)
	if !ok {
		return 0
	}
	return n.(int)
}

// Authenticator adapts g for atm.Open.
func (g *Guard) Authenticator(ctx context.Context) atm.Authenticator {
	return func(secret string) bool {
		return g.Check(ctx, secret) == nil
	}
}
