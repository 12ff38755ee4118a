package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(250)

	cases := map[TransactionType]decimal.Decimal{
		TransactionTypeDeposit:    amount,
		TransactionTypeInterest:   amount,
		TransactionTypeWithdrawal: amount.Neg(),
		TransactionTypeFee:        amount.Neg(),
		TransactionTypeOther:      decimal.Zero,
	}
	for transactionType, want := range cases {
		entry := Transaction{Type: transactionType, Amount: amount}
		if got := entry.SignedAmount(); !got.Equal(want) {
			t.Fatalf("%s: expected %s, got %s", transactionType, want, got)
		}
	}
}

func TestParseTransactionType(t *testing.T) {
	if _, ok := ParseTransactionType("DEPOSIT"); !ok {
		t.Fatal("expected DEPOSIT to parse")
	}
	if _, ok := ParseTransactionType("REFUND"); ok {
		t.Fatal("expected REFUND to be rejected")
	}
}
