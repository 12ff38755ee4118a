package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCurrencyPrefix(t *testing.T) {
	if CurrencyHTG.Prefix() != "G" {
		t.Fatalf("expected G for HTG, got %s", CurrencyHTG.Prefix())
	}
	if CurrencyUSD.Prefix() != "D" {
		t.Fatalf("expected D for USD, got %s", CurrencyUSD.Prefix())
	}
}

func TestTermTypeMonths(t *testing.T) {
	cases := map[TermType]int{
		TermThreeMonths:      3,
		TermSixMonths:        6,
		TermTwelveMonths:     12,
		TermTwentyFourMonths: 24,
		TermType("UNKNOWN"):  12,
	}
	for term, want := range cases {
		if got := term.Months(); got != want {
			t.Fatalf("%s: expected %d months, got %d", term, want, got)
		}
	}
}

func TestEffectiveFloor(t *testing.T) {
	noOverdraft := CurrentDetails{MinimumBalance: decimal.NewFromInt(500)}
	if !noOverdraft.EffectiveFloor().Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected the minimum balance floor, got %s", noOverdraft.EffectiveFloor())
	}

	withOverdraft := CurrentDetails{
		MinimumBalance: decimal.NewFromInt(500),
		OverdraftLimit: decimal.NewFromInt(1000),
	}
	if !withOverdraft.EffectiveFloor().Equal(decimal.NewFromInt(-1000)) {
		t.Fatalf("overdraft must replace the minimum balance floor, got %s", withOverdraft.EffectiveFloor())
	}
}

func TestMatured(t *testing.T) {
	now := time.Now()
	future := TermDetails{MaturityDate: now.Add(time.Hour)}
	if future.Matured(now) {
		t.Fatal("account must not be matured before its maturity date")
	}

	exact := TermDetails{MaturityDate: now}
	if !exact.Matured(now) {
		t.Fatal("maturity is inclusive of the maturity instant")
	}

	past := TermDetails{MaturityDate: now.Add(-time.Hour)}
	if !past.Matured(now) {
		t.Fatal("account past its maturity date must be matured")
	}
}

func TestInterestAccruedSinceMaturity(t *testing.T) {
	maturity := time.Now().Add(-time.Hour)

	unstamped := TermDetails{MaturityDate: maturity}
	if unstamped.InterestAccruedSinceMaturity() {
		t.Fatal("no stamp means no accrual yet")
	}

	beforeMaturity := maturity.Add(-24 * time.Hour)
	stale := TermDetails{MaturityDate: maturity, LastInterestCalculation: &beforeMaturity}
	if stale.InterestAccruedSinceMaturity() {
		t.Fatal("a pre-maturity stamp belongs to a previous term")
	}

	afterMaturity := maturity.Add(time.Minute)
	done := TermDetails{MaturityDate: maturity, LastInterestCalculation: &afterMaturity}
	if !done.InterestAccruedSinceMaturity() {
		t.Fatal("a post-maturity stamp means interest is already posted")
	}
}
