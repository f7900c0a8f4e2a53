package domain_test

import (
	"testing"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		txType domain.TransactionType
		want   bool
	}{
		{name: "credit", txType: domain.Credit, want: true},
		{name: "debit", txType: domain.Debit, want: true},
		{name: "opening balance", txType: domain.OpeningBalance, want: true},
		{name: "adjustment", txType: domain.Adjustment, want: true},
		{name: "unknown type", txType: domain.TransactionType("TRANSFER"), want: false},
		{name: "lowercase is not accepted", txType: domain.TransactionType("credit"), want: false},
		{name: "empty", txType: domain.TransactionType(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txType.IsValid())
		})
	}
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(150)

	tests := []struct {
		name   string
		txType domain.TransactionType
		want   decimal.Decimal
	}{
		{name: "credit applies positively", txType: domain.Credit, want: amount},
		{name: "opening balance applies positively", txType: domain.OpeningBalance, want: amount},
		{name: "debit applies negatively", txType: domain.Debit, want: amount.Neg()},
		{name: "adjustment applies negatively", txType: domain.Adjustment, want: amount.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.LedgerEntry{Amount: amount, TransactionType: tt.txType}
			got := entry.SignedAmount()
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestRelationshipType_IsValid(t *testing.T) {
	assert.True(t, domain.RelationshipCustomer.IsValid())
	assert.True(t, domain.RelationshipSupplier.IsValid())
	assert.False(t, domain.RelationshipType("FRIEND").IsValid())
}
