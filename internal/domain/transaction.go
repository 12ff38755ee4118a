package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeInterest   TransactionType = "INTEREST"
	TransactionTypeFee        TransactionType = "FEE"
	TransactionTypeOther      TransactionType = "OTHER"
)

func ParseTransactionType(raw string) (TransactionType, bool) {
	switch TransactionType(raw) {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeInterest,
		TransactionTypeFee, TransactionTypeOther:
		return TransactionType(raw), true
	}
	return "", false
}

type TransactionStatus string

const (
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusCompleted  TransactionStatus = "COMPLETED"
	TransactionStatusCancelled  TransactionStatus = "CANCELLED"
)

// Transaction is one immutable ledger posting. Once COMPLETED its amount and
// balance snapshots never change; cancellation appends a compensating entry
// and flips Status to CANCELLED on the original.
type Transaction struct {
	ID                   string
	AccountID            string
	AccountNumber        string
	Kind                 AccountKind
	Type                 TransactionType
	Amount               decimal.Decimal
	Currency             Currency
	BalanceBefore        decimal.Decimal
	BalanceAfter         decimal.Decimal
	Description          string
	Reference            string
	ProcessedBy          string
	BranchID             int
	Status               TransactionStatus
	Fees                 *decimal.Decimal
	ExchangeRate         *decimal.Decimal
	RelatedTransactionID string
	ProcessedAt          time.Time
	CreatedAt            time.Time
}

// SignedAmount is the effect of the posting on the account balance: positive
// for deposits and interest, negative for withdrawals and fees, zero for
// audit-only entries.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeInterest:
		return t.Amount
	case TransactionTypeWithdrawal, TransactionTypeFee:
		return t.Amount.Neg()
	}
	return decimal.Zero
}

// TransferResult pairs the two cross-linked legs of a completed transfer.
type TransferResult struct {
	SourceTransaction      Transaction
	DestinationTransaction Transaction
}
