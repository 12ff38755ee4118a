package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

type Config struct {
	DatabaseDSN   string
	MigrationsDir string
	HTTPAddr      string
	ChannelID     string
	ChannelKey    string

	Accounts AccountDefaults
}

// AccountDefaults is the configuration table of per-(kind, currency) defaults
// applied when an opening request leaves a value unset.
type AccountDefaults struct {
	Current map[domain.Currency]CurrentDefaults
	Term    map[domain.Currency]TermDefaults
}

type CurrentDefaults struct {
	MinimumBalance         decimal.Decimal
	DailyWithdrawalLimit   decimal.Decimal
	MonthlyWithdrawalLimit decimal.Decimal
	DailyDepositLimit      decimal.Decimal
}

type TermDefaults struct {
	// Annual interest rate per term length, as a fraction (0.025 = 2.5%).
	InterestRates map[domain.TermType]decimal.Decimal
	// Early-withdrawal penalty per term length, as a fraction.
	Penalties map[domain.TermType]decimal.Decimal
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.dsn", "host=localhost port=5432 dbname=account_ledger user=postgres sslmode=disable")
	v.SetDefault("migrations.dir", "migrations")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("channel.id", "BackOffice")
	v.SetDefault("channel.key", "")

	v.SetDefault("defaults.current.htg.minimum_balance", "500")
	v.SetDefault("defaults.current.htg.daily_withdrawal_limit", "100000")
	v.SetDefault("defaults.current.htg.monthly_withdrawal_limit", "500000")
	v.SetDefault("defaults.current.htg.daily_deposit_limit", "1000000")
	v.SetDefault("defaults.current.usd.minimum_balance", "25")
	v.SetDefault("defaults.current.usd.daily_withdrawal_limit", "2000")
	v.SetDefault("defaults.current.usd.monthly_withdrawal_limit", "10000")
	v.SetDefault("defaults.current.usd.daily_deposit_limit", "20000")

	// HTG base rates per term; USD rates are half the HTG rate for the
	// same term. Penalties are currency independent.
	v.SetDefault("defaults.term.rate.three_months", "0.025")
	v.SetDefault("defaults.term.rate.six_months", "0.035")
	v.SetDefault("defaults.term.rate.twelve_months", "0.045")
	v.SetDefault("defaults.term.rate.twenty_four_months", "0.055")
	v.SetDefault("defaults.term.usd_rate_factor", "0.5")
	v.SetDefault("defaults.term.penalty.three_months", "0.05")
	v.SetDefault("defaults.term.penalty.six_months", "0.075")
	v.SetDefault("defaults.term.penalty.twelve_months", "0.10")
	v.SetDefault("defaults.term.penalty.twenty_four_months", "0.15")

	cfg := Config{
		DatabaseDSN:   v.GetString("database.dsn"),
		MigrationsDir: v.GetString("migrations.dir"),
		HTTPAddr:      v.GetString("http.addr"),
		ChannelID:     v.GetString("channel.id"),
		ChannelKey:    v.GetString("channel.key"),
	}

	var err error
	cfg.Accounts, err = loadAccountDefaults(v)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadAccountDefaults(v *viper.Viper) (AccountDefaults, error) {
	defaults := AccountDefaults{
		Current: make(map[domain.Currency]CurrentDefaults, 2),
		Term:    make(map[domain.Currency]TermDefaults, 2),
	}

	for _, ccy := range []domain.Currency{domain.CurrencyHTG, domain.CurrencyUSD} {
		key := strings.ToLower(string(ccy))
		cd := CurrentDefaults{}
		var err error
		if cd.MinimumBalance, err = amount(v, "defaults.current."+key+".minimum_balance"); err != nil {
			return AccountDefaults{}, err
		}
		if cd.DailyWithdrawalLimit, err = amount(v, "defaults.current."+key+".daily_withdrawal_limit"); err != nil {
			return AccountDefaults{}, err
		}
		if cd.MonthlyWithdrawalLimit, err = amount(v, "defaults.current."+key+".monthly_withdrawal_limit"); err != nil {
			return AccountDefaults{}, err
		}
		if cd.DailyDepositLimit, err = amount(v, "defaults.current."+key+".daily_deposit_limit"); err != nil {
			return AccountDefaults{}, err
		}
		defaults.Current[ccy] = cd
	}

	usdFactor, err := amount(v, "defaults.term.usd_rate_factor")
	if err != nil {
		return AccountDefaults{}, err
	}

	terms := map[domain.TermType]string{
		domain.TermThreeMonths:      "three_months",
		domain.TermSixMonths:        "six_months",
		domain.TermTwelveMonths:     "twelve_months",
		domain.TermTwentyFourMonths: "twenty_four_months",
	}

	htg := TermDefaults{
		InterestRates: make(map[domain.TermType]decimal.Decimal, len(terms)),
		Penalties:     make(map[domain.TermType]decimal.Decimal, len(terms)),
	}
	usd := TermDefaults{
		InterestRates: make(map[domain.TermType]decimal.Decimal, len(terms)),
		Penalties:     make(map[domain.TermType]decimal.Decimal, len(terms)),
	}
	for term, key := range terms {
		rate, err := amount(v, "defaults.term.rate."+key)
		if err != nil {
			return AccountDefaults{}, err
		}
		penalty, err := amount(v, "defaults.term.penalty."+key)
		if err != nil {
			return AccountDefaults{}, err
		}
		htg.InterestRates[term] = rate
		htg.Penalties[term] = penalty
		usd.InterestRates[term] = rate.Mul(usdFactor)
		usd.Penalties[term] = penalty
	}
	defaults.Term[domain.CurrencyHTG] = htg
	defaults.Term[domain.CurrencyUSD] = usd

	return defaults, nil
}

func amount(v *viper.Viper, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(v.GetString(key))
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config %s: invalid decimal %q: %w", key, raw, err)
	}
	return parsed, nil
}
