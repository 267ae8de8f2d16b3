// Package config loads the constants the shell hands to the rule engines:
// the ATM secret and opening balance, the currency base rates and the grade
// bounds and bands. Defaults match the classic demo values; a TOML file can
// override any of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml"
	"github.com/shopspring/decimal"

	"github.com/nehashinde/codsoft/atm"
	"github.com/nehashinde/codsoft/currency"
	"github.com/nehashinde/codsoft/grade"
)

// EnvFile names the environment variable holding the default config path.
const EnvFile = "CODSOFT_CONFIG"

// ErrNonPositiveLockout rejects a lockout that would never expire.
var ErrNonPositiveLockout = errors.New("lockout must be positive")

// Config holds the settings of every codsoft command.
type Config struct {
	ATM      ATM      `toml:"atm"`
	Currency Currency `toml:"currency"`
	Grade    Grade    `toml:"grade"`
}

// ATM configures the account and PIN policy of the ATM session.
type ATM struct {
	PIN     string `toml:"pin" validate:"required,numeric"`
	Holder  string `toml:"holder" validate:"required"`
	Number  string `toml:"number" validate:"required"`
	Opening string `toml:"opening" validate:"required,numeric"`
	Symbol  string `toml:"symbol"`

	// MaxAttempts failed secret checks lock the account for Lockout.
	MaxAttempts     int    `toml:"max_attempts" validate:"gte=1"`
	Lockout         string `toml:"lockout" validate:"required"`
	AttemptInterval string `toml:"attempt_interval"`
}

// Currency configures the conversion table.
type Currency struct {
	Anchor string            `toml:"anchor" validate:"required,len=3,uppercase"`
	Rates  map[string]string `toml:"rates" validate:"dive,keys,len=3,uppercase,endkeys,numeric"`
	Quotes []Quote           `toml:"quotes" validate:"dive"`
}

// Quote prices Code against Via: one unit of Via buys Units of Code.
type Quote struct {
	Code  string `toml:"code" validate:"required,len=3,uppercase"`
	Via   string `toml:"via" validate:"required,len=3,uppercase"`
	Units string `toml:"units" validate:"required,numeric"`
}

// Grade configures mark bounds and grade bands.
type Grade struct {
	InternalMax int    `toml:"internal_max" validate:"gt=0"`
	ExternalMax int    `toml:"external_max" validate:"gt=0"`
	Bands       []Band `toml:"bands" validate:"required,min=1,dive"`
}

// Band is one grade threshold.
type Band struct {
	Min    string `toml:"min" validate:"required,numeric"`
	Grade  string `toml:"grade" validate:"required"`
	Remark string `toml:"remark"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ATM: ATM{
			PIN:             "1234",
			Holder:          "Neha Shinde",
			Number:          "COD12345",
			Opening:         "5000",
			Symbol:          atm.DefaultSymbol,
			MaxAttempts:     3,
			Lockout:         "5m",
			AttemptInterval: "1s",
		},
		Currency: Currency{
			Anchor: "INR",
			Rates: map[string]string{
				"USD": "83.50",
				"EUR": "90.00",
				"GBP": "105.50",
			},
			Quotes: []Quote{
				{Code: "JPY", Via: "USD", Units: "150"},
			},
		},
		Grade: Grade{
			InternalMax: grade.DefaultBounds.Internal,
			ExternalMax: grade.DefaultBounds.External,
			Bands: []Band{
				{Min: "85", Grade: "A", Remark: "Outstanding"},
				{Min: "70", Grade: "B", Remark: "Good"},
				{Min: "50", Grade: "C", Remark: "Average"},
				{Min: "0", Grade: "D", Remark: "Needs Improvement"},
			},
		},
	}
}

// Load returns the defaults overlaid with the values set in the TOML file at
// path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}
	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: unable to parse config: %w", path, err)
	}
	cfg.overlay(&file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// overlay copies every value set in f onto c. Tables and arrays replace the
// defaults as a whole.
func (c *Config) overlay(f *Config) {
	setString(&c.ATM.PIN, f.ATM.PIN)
	setString(&c.ATM.Holder, f.ATM.Holder)
	setString(&c.ATM.Number, f.ATM.Number)
	setString(&c.ATM.Opening, f.ATM.Opening)
	setString(&c.ATM.Symbol, f.ATM.Symbol)
	setString(&c.ATM.Lockout, f.ATM.Lockout)
	setString(&c.ATM.AttemptInterval, f.ATM.AttemptInterval)
	if f.ATM.MaxAttempts != 0 {
		c.ATM.MaxAttempts = f.ATM.MaxAttempts
	}

	setString(&c.Currency.Anchor, f.Currency.Anchor)
	if f.Currency.Rates != nil {
		c.Currency.Rates = f.Currency.Rates
	}
	if f.Currency.Quotes != nil {
		c.Currency.Quotes = f.Currency.Quotes
	}

	if f.Grade.InternalMax != 0 {
		c.Grade.InternalMax = f.Grade.InternalMax
	}
	if f.Grade.ExternalMax != 0 {
		c.Grade.ExternalMax = f.Grade.ExternalMax
	}
	if f.Grade.Bands != nil {
		c.Grade.Bands = f.Grade.Bands
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

var validate = validator.New()

// Validate checks field formats. Semantic checks (positive rates, sorted
// bands) happen when the engines are built.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	lockout, err := time.ParseDuration(c.ATM.Lockout)
	if err != nil {
		return fmt.Errorf("invalid config: atm.lockout: %w", err)
	}
	if lockout <= 0 {
		return fmt.Errorf("invalid config: atm.lockout: %w", ErrNonPositiveLockout)
	}
	if c.ATM.AttemptInterval != "" {
		if _, err := time.ParseDuration(c.ATM.AttemptInterval); err != nil {
			return fmt.Errorf("invalid config: atm.attempt_interval: %w", err)
		}
	}
	return nil
}

// Account returns the account the ATM session opens.
func (a ATM) Account() atm.Account {
	return atm.Account{Holder: a.Holder, Number: a.Number, Symbol: a.Symbol}
}

// OpeningBalance parses the opening balance.
func (a ATM) OpeningBalance() (decimal.Decimal, error) {
	return decimal.NewFromString(a.Opening)
}

// LockoutDuration is how long a locked secret stays locked.
func (a ATM) LockoutDuration() time.Duration {
	d, _ := time.ParseDuration(a.Lockout)
	return d
}

// Interval is the minimum spacing between secret attempts; zero disables it.
func (a ATM) Interval() time.Duration {
	d, _ := time.ParseDuration(a.AttemptInterval)
	return d
}

// Table builds the conversion table.
func (c Currency) Table() (*currency.Table, error) {
	base := make(map[currency.Code]decimal.Decimal, len(c.Rates))
	for code, s := range c.Rates {
		rate, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("currency.rates.%s: %w", code, err)
		}
		base[currency.Code(code)] = rate
	}
	quotes := make([]currency.Quote, 0, len(c.Quotes))
	for _, q := range c.Quotes {
		units, err := decimal.NewFromString(q.Units)
		if err != nil {
			return nil, fmt.Errorf("currency.quotes %s: %w", q.Code, err)
		}
		quotes = append(quotes, currency.Quote{Code: currency.Code(q.Code), Via: currency.Code(q.Via), Units: units})
	}
	return currency.New(currency.Code(c.Anchor), base, quotes...)
}

// Evaluator builds the grade evaluator.
func (g Grade) Evaluator() (*grade.Evaluator, error) {
	bands := make([]grade.Band, 0, len(g.Bands))
	for _, b := range g.Bands {
		min, err := decimal.NewFromString(b.Min)
		if err != nil {
			return nil, fmt.Errorf("grade.bands %s: %w", b.Grade, err)
		}
		bands = append(bands, grade.Band{Min: min, Grade: b.Grade, Remark: b.Remark})
	}
	return grade.NewEvaluator(grade.Bounds{Internal: g.InternalMax, External: g.ExternalMax}, bands)
}
