/*
Package config loads and persists the billing configuration file.

PURPOSE:
  Supplies the values the billing engine is parameterized by: the
  invoice-day schedule, payment terms, and hourly rates per client. The
  engine itself never reads configuration; this package produces a value
  the caller threads into every core call.

FILE FORMAT:
  A single JSON object at ~/.config/tasklog/config.json (overridable):

    {
      "invoice_days": [1, 15],
      "payment_term_days": 15,
      "default_hourly_rate": "100",
      "client_rates": {
        "Acme": {"rate": "120", "hour_limit": "40"}
      }
    }

DEFAULT FALLBACK:
  A missing file, or individual missing/invalid values, fall back to
  defaults (invoice days [1, 15], 15-day terms) so the engine never sees
  an empty schedule.

RATE LOOKUP:
  Client rate lookup is case-insensitive even though client identity in
  the task log is case-sensitive.
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fluteroute/task-management/billing"
)

const (
	appName    = "tasklog"
	configFile = "config.json"
)

// Defaults applied when the file or individual values are absent.
var (
	DefaultInvoiceDays     = []int{1, 15}
	DefaultPaymentTermDays = 15
	DefaultHourlyRate      = decimal.NewFromInt(100)
)

// ClientRate is the per-client billing rate, with an optional soft cap on
// hours per period (advisory only; the engine does not enforce it).
type ClientRate struct {
	Rate      decimal.Decimal  `json:"rate"`
	HourLimit *decimal.Decimal `json:"hour_limit,omitempty"`
}

// Config is the full configuration file contents.
type Config struct {
	InvoiceDays       []int                 `json:"invoice_days"`
	PaymentTermDays   int                   `json:"payment_term_days"`
	DefaultHourlyRate decimal.Decimal       `json:"default_hourly_rate"`
	ClientRates       map[string]ClientRate `json:"client_rates,omitempty"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		InvoiceDays:       append([]int(nil), DefaultInvoiceDays...),
		PaymentTermDays:   DefaultPaymentTermDays,
		DefaultHourlyRate: DefaultHourlyRate,
	}
}

// DefaultPath returns the conventional config location under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}

// Load reads the configuration at path. A missing file yields defaults;
// missing or invalid individual values fall back field by field.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.InvoiceDays) == 0 {
		c.InvoiceDays = append([]int(nil), DefaultInvoiceDays...)
	}
	if c.PaymentTermDays <= 0 {
		c.PaymentTermDays = DefaultPaymentTermDays
	}
	if !c.DefaultHourlyRate.IsPositive() {
		c.DefaultHourlyRate = DefaultHourlyRate
	}
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// RateFor returns the hourly rate for a client, matched case-insensitively,
// falling back to the default rate.
func (c *Config) RateFor(client string) decimal.Decimal {
	for name, cr := range c.ClientRates {
		if strings.EqualFold(name, client) {
			return cr.Rate
		}
	}
	return c.DefaultHourlyRate
}

// HourLimitFor returns the client's optional hour limit, if configured.
func (c *Config) HourLimitFor(client string) (decimal.Decimal, bool) {
	for name, cr := range c.ClientRates {
		if strings.EqualFold(name, client) && cr.HourLimit != nil {
			return *cr.HourLimit, true
		}
	}
	return decimal.Zero, false
}

// Settings converts the configuration into the engine's caller-owned value,
// normalizing the schedule.
func (c *Config) Settings() (billing.Settings, error) {
	sched, err := billing.NewSchedule(c.InvoiceDays)
	if err != nil {
		return billing.Settings{}, err
	}
	return billing.Settings{Schedule: sched, PaymentTermDays: c.PaymentTermDays}, nil
}
