package config

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kaysa-fintech/account-ledger/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTPAddr == "" || cfg.DatabaseDSN == "" {
		t.Fatal("expected server and database defaults")
	}
	if cfg.ChannelID != "BackOffice" {
		t.Fatalf("unexpected default channel id %q", cfg.ChannelID)
	}

	htg, ok := cfg.Accounts.Current[domain.CurrencyHTG]
	if !ok {
		t.Fatal("expected HTG current account defaults")
	}
	if htg.MinimumBalance.String() != "500" {
		t.Fatalf("expected HTG minimum balance 500, got %s", htg.MinimumBalance)
	}
	usd := cfg.Accounts.Current[domain.CurrencyUSD]
	if usd.MinimumBalance.String() != "25" {
		t.Fatalf("expected USD minimum balance 25, got %s", usd.MinimumBalance)
	}
}

func TestLoadTermRatesHalveForUSD(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	htg := cfg.Accounts.Term[domain.CurrencyHTG]
	usd := cfg.Accounts.Term[domain.CurrencyUSD]
	two := decimal.NewFromInt(2)

	for _, term := range []domain.TermType{
		domain.TermThreeMonths, domain.TermSixMonths,
		domain.TermTwelveMonths, domain.TermTwentyFourMonths,
	} {
		htgRate, ok := htg.InterestRates[term]
		if !ok {
			t.Fatalf("missing HTG rate for %s", term)
		}
		usdRate := usd.InterestRates[term]
		if !usdRate.Mul(two).Equal(htgRate) {
			t.Fatalf("%s: expected USD rate %s to be half of %s", term, usdRate, htgRate)
		}

		if !htg.Penalties[term].Equal(usd.Penalties[term]) {
			t.Fatalf("%s: penalties must be currency independent", term)
		}
	}

	if usd.InterestRates[domain.TermThreeMonths].String() != "0.0125" {
		t.Fatalf("expected USD three month rate 0.0125, got %s", usd.InterestRates[domain.TermThreeMonths])
	}
}
