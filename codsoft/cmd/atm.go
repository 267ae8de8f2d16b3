package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/alfredxing/calc/compute"
	"github.com/hako/durafmt"
	date "github.com/joyt/godate"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/nehashinde/codsoft/atm"
	"github.com/nehashinde/codsoft/codsoft/internal/config"
	"github.com/nehashinde/codsoft/codsoft/internal/fastcolor"
	"github.com/nehashinde/codsoft/codsoft/internal/pinguard"
	"github.com/nehashinde/codsoft/codsoft/internal/prompt"
)

var (
	errEmptyAmount    = errors.New("please enter an amount")
	errNegativeAmount = errors.New("amount cannot be negative")
	errInvalidAmount  = errors.New("invalid amount")
)

var sessionClock = time.Now

// atmCmd represents the atm command
var atmCmd = &cobra.Command{
	Use:   "atm",
	Short: "Start an interactive ATM session",
	Long: `Start an interactive ATM session on the configured account.

The PIN is asked once to open the session and again before account
details or history are shown. Amounts may be written as arithmetic
expressions, e.g. "deposit 2*250".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
		s, err := openSession(cmd.Context(), cfg, in, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return s.run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(atmCmd)
}

// session is one authenticated run of the ATM shell.
type session struct {
	ledger  *atm.Ledger
	guard   *pinguard.Guard
	prompt  *prompt.Prompt
	out     *bufio.Writer
	columns int
	started time.Time
}

func openSession(ctx context.Context, c *config.Config, p *prompt.Prompt, out io.Writer) (*session, error) {
	opening, err := c.ATM.OpeningBalance()
	if err != nil {
		return nil, err
	}
	guard := pinguard.New(atm.PIN(c.ATM.PIN), c.ATM.MaxAttempts, c.ATM.LockoutDuration(), c.ATM.Interval())

	s := &session{
		guard:   guard,
		prompt:  p,
		out:     bufio.NewWriter(out),
		columns: outputColumns(out),
		started: sessionClock(),
	}
	defer s.out.Flush()

	secret, err := p.Secret("Enter 4-digit PIN: ")
	if err != nil {
		return nil, err
	}
	s.ledger, err = atm.Open(guard.Authenticator(ctx), secret, c.ATM.Account(), opening)
	if err != nil {
		logger.Warn("session refused", slog.Any("error", err))
		fastcolor.FgRed.WriteString(s.out, "Wrong or empty PIN! Access Denied."+newLine)
		return nil, err
	}

	logger.Debug("session opened", slog.String("holder", c.ATM.Holder))
	fastcolor.FgGreen.WriteString(s.out, "Welcome, "+c.ATM.Holder+"!"+newLine)
	s.out.WriteString("Type help for a list of commands." + newLine)
	return s, nil
}

func (s *session) run(ctx context.Context) error {
	defer s.close()
	for {
		s.out.Flush()
		line, err := s.prompt.Line("atm> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		verb, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch strings.ToLower(verb) {
		case "":
		case "deposit", "d":
			s.deposit(arg)
		case "withdraw", "w":
			s.withdraw(arg)
		case "balance", "b":
			s.balance()
		case "details":
			s.details(ctx)
		case "history", "h":
			s.history(ctx, arg)
		case "help", "?":
			s.help()
		case "quit", "exit", "q":
			return nil
		default:
			s.fail(fmt.Sprintf("Unknown command %q, type help.", verb))
		}
	}
}

func (s *session) close() {
	elapsed := sessionClock().Sub(s.started).Round(time.Second)
	s.out.WriteString("Session closed after " + durafmt.Parse(elapsed).LimitFirstN(2).String() + "." + newLine)
	s.out.Flush()
	logger.Debug("session closed", slog.Duration("elapsed", elapsed))
}

func (s *session) fail(msg string) {
	fastcolor.FgRed.WriteString(s.out, msg+newLine)
}

func (s *session) deposit(arg string) {
	amount, err := parseAmount(arg)
	if err != nil {
		s.fail("Please enter a valid number!")
		return
	}
	if err := s.ledger.Deposit(amount); err != nil {
		logger.Debug("deposit rejected", slog.String("amount", arg), slog.Any("error", err))
		s.fail("Invalid deposit amount!")
		return
	}
	fastcolor.FgGreen.WriteString(s.out, "Deposited "+s.ledger.Symbol()+amount.StringFixed(2)+newLine)
}

func (s *session) withdraw(arg string) {
	amount, err := parseAmount(arg)
	if err != nil {
		s.fail("Please enter a valid number!")
		return
	}
	switch err := s.ledger.Withdraw(amount); {
	case errors.Is(err, atm.ErrInsufficientFunds):
		s.fail("Insufficient balance!")
	case err != nil:
		logger.Debug("withdrawal rejected", slog.String("amount", arg), slog.Any("error", err))
		s.fail("Invalid withdrawal amount!")
	default:
		fastcolor.FgGreen.WriteString(s.out, "Withdrawn "+s.ledger.Symbol()+amount.StringFixed(2)+newLine)
	}
}

func (s *session) balance() {
	b := s.ledger.Balance()
	s.out.WriteString("Current Balance: ")
	fastcolor.FgBlue.WriteString(s.out, s.ledger.Symbol()+b.StringFixed(2))
	s.out.WriteString(newLine)
}

// confirm asks for the PIN again before sensitive output.
func (s *session) confirm(ctx context.Context, label string) bool {
	s.out.Flush()
	secret, err := s.prompt.Secret(label)
	if err != nil {
		s.fail("Access Denied!")
		return false
	}
	switch err := s.guard.Check(ctx, secret); {
	case errors.Is(err, pinguard.ErrLocked):
		s.fail("Too many failed attempts, try again later.")
		return false
	case err != nil:
		logger.Warn("pin check failed", slog.Int("failures", s.guard.Failures()))
		s.fail("Access Denied!")
		return false
	}
	return true
}

func (s *session) details(ctx context.Context) {
	if !s.confirm(ctx, "Enter PIN to view details: ") {
		return
	}
	WriteDetails(s.out, s.ledger.AccountDetails())
}

func (s *session) history(ctx context.Context, since string) {
	var from time.Time
	if since != "" {
		var err error
		if from, err = sinceDate(since); err != nil {
			s.fail(fmt.Sprintf("Invalid date %q.", since))
			return
		}
	}
	if !s.confirm(ctx, "Enter PIN to view history: ") {
		return
	}

	entries := entriesSince(s.ledger.TransactionHistory(), from)
	fastcolor.Bold.WriteString(s.out, "Transaction History:")
	s.out.WriteString(newLine)
	WriteHistory(s.out, entries, s.ledger.Symbol(), s.columns)
}

// sinceDate parses a history filter date as local midnight, the clock
// ledger entries are stamped with.
func sinceDate(s string) (time.Time, error) {
	t, _, err := date.ParseAndGetLayout(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// entriesSince keeps the entries stamped at or after from. A zero from keeps
// everything.
func entriesSince(entries []atm.Entry, from time.Time) []atm.Entry {
	if from.IsZero() {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if !e.Time.Before(from) {
			kept = append(kept, e)
		}
	}
	return kept
}

func (s *session) help() {
	const usage = `Commands:
  deposit <amount>    add money to the account
  withdraw <amount>   take money out of the account
  balance             show the current balance
  details             show the account holder and masked number
  history [since]     show transactions, optionally from a date
  help                show this list
  quit                end the session
`
	s.out.WriteString(usage)
}

// parseAmount reads a decimal, falling back to an arithmetic expression.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errEmptyAmount
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, nil
	}
	v, err := compute.Evaluate(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%w: %q", errInvalidAmount, s)
	}
	// drop binary float noise below the paisa
	return decimal.NewFromFloat(v).Round(2), nil
}
