package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testAccount(number string, balance int64) Account {
	return Account{
		AccountNumber: number,
		CustomerID:    "CUST-" + number,
		Currency:      CurrencyHTG,
		Balance:       decimal.NewFromInt(balance),
		Status:        AccountStatusActive,
		OpeningDate:   time.Now(),
	}
}

func TestParseSortField(t *testing.T) {
	if field, ok := ParseSortField(""); !ok || field != SortByAccountNumber {
		t.Fatalf("empty input must default to accountNumber, got %s", field)
	}
	if field, ok := ParseSortField("BALANCE"); !ok || field != SortByBalance {
		t.Fatalf("sort fields are case insensitive, got %s / %v", field, ok)
	}
	if _, ok := ParseSortField("favoriteColor"); ok {
		t.Fatal("unknown fields must be rejected")
	}
}

func TestSortAccountsTieBreaksOnAccountNumber(t *testing.T) {
	accounts := []Account{
		testAccount("G3", 100),
		testAccount("G1", 100),
		testAccount("G2", 200),
	}

	SortAccounts(accounts, SortByBalance, false)
	if accounts[0].AccountNumber != "G1" || accounts[1].AccountNumber != "G3" || accounts[2].AccountNumber != "G2" {
		t.Fatalf("unexpected order: %s %s %s", accounts[0].AccountNumber, accounts[1].AccountNumber, accounts[2].AccountNumber)
	}

	SortAccounts(accounts, SortByBalance, true)
	if accounts[0].AccountNumber != "G2" {
		t.Fatalf("expected the largest balance first, got %s", accounts[0].AccountNumber)
	}
}

func TestSortAccountsUnknownFieldFallsBackToAccountNumber(t *testing.T) {
	accounts := []Account{
		testAccount("G2", 100),
		testAccount("G1", 200),
	}
	SortAccounts(accounts, SortField("bogus"), false)
	if accounts[0].AccountNumber != "G1" {
		t.Fatalf("expected account number order, got %s first", accounts[0].AccountNumber)
	}
}

func TestAccountFilterNormalize(t *testing.T) {
	filter := AccountFilter{Page: -3, PageSize: 1000}
	filter.Normalize()
	if filter.Page != 1 {
		t.Fatalf("expected page 1, got %d", filter.Page)
	}
	if filter.PageSize != MaxPageSize {
		t.Fatalf("expected page size %d, got %d", MaxPageSize, filter.PageSize)
	}
	if filter.SortBy != SortByAccountNumber {
		t.Fatalf("expected the default sort field, got %s", filter.SortBy)
	}

	filter = AccountFilter{}
	filter.Normalize()
	if filter.PageSize != DefaultPageSize {
		t.Fatalf("expected the default page size, got %d", filter.PageSize)
	}
}

func TestAccountFilterMatches(t *testing.T) {
	opened := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	account := Account{
		AccountNumber: "G12345678901",
		CustomerID:    "CUST-77",
		BranchID:      2,
		Currency:      CurrencyHTG,
		Balance:       decimal.NewFromInt(1500),
		Status:        AccountStatusActive,
		OpeningDate:   opened,
	}

	if !(AccountFilter{}).Matches(account) {
		t.Fatal("the empty filter must match everything")
	}

	if !(AccountFilter{Search: "CUST-77"}).Matches(account) {
		t.Fatal("search must match the customer id")
	}
	if !(AccountFilter{Search: "2345678"}).Matches(account) {
		t.Fatal("search must match inside the account number")
	}
	if (AccountFilter{Search: "nope"}).Matches(account) {
		t.Fatal("a non-matching search term must exclude the account")
	}

	usd := CurrencyUSD
	if (AccountFilter{Currency: &usd}).Matches(account) {
		t.Fatal("currency mismatch must exclude the account")
	}

	closedStatus := AccountStatusClosed
	if (AccountFilter{Status: &closedStatus}).Matches(account) {
		t.Fatal("status mismatch must exclude the account")
	}

	branch := 9
	if (AccountFilter{BranchID: &branch}).Matches(account) {
		t.Fatal("branch mismatch must exclude the account")
	}

	after := opened.Add(24 * time.Hour)
	if (AccountFilter{DateFrom: &after}).Matches(account) {
		t.Fatal("accounts opened before dateFrom must be excluded")
	}
	before := opened.Add(-24 * time.Hour)
	if (AccountFilter{DateTo: &before}).Matches(account) {
		t.Fatal("accounts opened after dateTo must be excluded")
	}

	tooHigh := decimal.NewFromInt(2000)
	if (AccountFilter{MinBalance: &tooHigh}).Matches(account) {
		t.Fatal("balances below minBalance must be excluded")
	}
	tooLow := decimal.NewFromInt(1000)
	if (AccountFilter{MaxBalance: &tooLow}).Matches(account) {
		t.Fatal("balances above maxBalance must be excluded")
	}

	min := decimal.NewFromInt(1000)
	max := decimal.NewFromInt(2000)
	if !(AccountFilter{MinBalance: &min, MaxBalance: &max, Currency: &account.Currency}).Matches(account) {
		t.Fatal("an account inside every constraint must match")
	}
}
