package repositories

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	// FindEntryByID retrieves an active ledger entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByCustomer retrieves the customer's active entries, newest
	// transaction date first.
	ListEntriesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.LedgerEntry, error)

	// SummarizeCustomer aggregates total credits, total debits and the entry
	// count over the customer's active entries.
	SummarizeCustomer(ctx context.Context, customerID string) (totalCredit, totalDebit decimal.Decimal, entryCount int64, err error)

	// ListActiveDebitEntries retrieves all of the customer's active DEBIT
	// entries, oldest transaction date first. Payment settlement walks this
	// list when applying and when computing outstanding balances.
	ListActiveDebitEntries(ctx context.Context, customerID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries. Every write that
// moves a balance commits the entry row and the customer balance together in
// one database transaction.
type LedgerWriter interface {
	// SaveEntry persists the entry and applies delta to the customer's
	// current balance atomically, locking the customer row for the duration.
	// A positive creditLimit is enforced against the locked balance before
	// the entry is applied. Returns the customer's balance after the entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry, delta, creditLimit decimal.Decimal) (decimal.Decimal, error)

	// UpdateEntry rewrites the entry's mutable fields and recomputes the
	// customer's balance from its active entries in the same transaction.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// MarkEntryDeleted soft-deletes the entry and recomputes the customer's
	// balance in the same transaction.
	MarkEntryDeleted(ctx context.Context, entryID string, deletedBy string) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
