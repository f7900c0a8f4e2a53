package services

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade records transactions against customers and answers balance
// queries. Entry persistence and the customer balance mutation always commit
// together.
type LedgerSvcFacade interface {
	// RecordEntry validates and persists a new entry, applying its signed
	// amount to the customer's current balance atomically. Returns the
	// entry and the balance after it was applied.
	RecordEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, actingUserID string) (*domain.LedgerEntry, decimal.Decimal, error)

	// GetEntryByID returns an active entry in the acting user's shop.
	GetEntryByID(ctx context.Context, entryID, actingUserID string) (*domain.LedgerEntry, error)

	// ListEntriesForCustomer returns the customer's active entries, newest
	// transaction date first.
	ListEntriesForCustomer(ctx context.Context, customerID, actingUserID string, limit, offset int) ([]domain.LedgerEntry, error)

	// UpdateEntry overwrites the provided fields; amount or type changes
	// recompute the customer balance.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateLedgerEntryRequest, actingUserID string) (*domain.LedgerEntry, error)

	// DeleteEntry soft-deletes the entry and recomputes the balance.
	DeleteEntry(ctx context.Context, entryID, actingUserID string) error

	// GetCustomerBalanceSummary aggregates the customer's active entries.
	GetCustomerBalanceSummary(ctx context.Context, customerID, actingUserID string) (*domain.BalanceSummary, error)
}
