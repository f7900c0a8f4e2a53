package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portsrepo "github.com/ledgerly/ledgerly-backend/internal/core/ports/repositories"
	"github.com/ledgerly/ledgerly-backend/internal/models"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a ledger repository over the pool.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toModelEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		CustomerID:      d.CustomerID,
		ShopID:          d.ShopID,
		Amount:          d.Amount,
		TransactionType: string(d.TransactionType),
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		Notes:           sql.NullString{String: d.Notes, Valid: d.Notes != ""},
		ReferenceNumber: sql.NullString{String: d.ReferenceNumber, Valid: d.ReferenceNumber != ""},
		PaymentMethod:   sql.NullString{String: d.PaymentMethod, Valid: d.PaymentMethod != ""},
		IsActive:        d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		CustomerID:      m.CustomerID,
		ShopID:          m.ShopID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Notes:           m.Notes.String,
		ReferenceNumber: m.ReferenceNumber.String,
		PaymentMethod:   m.PaymentMethod.String,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const entryColumns = `entry_id, customer_id, shop_id, amount, transaction_type,
	transaction_date, description, notes, reference_number, payment_method,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.CustomerID,
		&m.ShopID,
		&m.Amount,
		&m.TransactionType,
		&m.TransactionDate,
		&m.Description,
		&m.Notes,
		&m.ReferenceNumber,
		&m.PaymentMethod,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// lockCustomerBalance locks the customer row and returns its current balance.
// The lock is held until the surrounding transaction commits, serializing
// concurrent balance writes for the same customer.
func lockCustomerBalance(ctx context.Context, tx pgx.Tx, customerID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	query := `SELECT current_balance FROM customers WHERE customer_id = $1 AND is_active FOR UPDATE;`
	if err := tx.QueryRow(ctx, query, customerID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to lock customer %s: %w", customerID, err)
	}
	return balance, nil
}

// SaveEntry persists the entry and applies delta to the customer's current
// balance within a single transaction. A positive creditLimit caps the
// balance: the check runs against the row-locked balance, so concurrent
// credits cannot jointly overshoot the limit.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, delta, creditLimit decimal.Decimal) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	balance, err := lockCustomerBalance(ctx, tx, entry.CustomerID)
	if err != nil {
		return decimal.Zero, err
	}

	if delta.IsPositive() && creditLimit.IsPositive() && balance.Add(delta).GreaterThan(creditLimit) {
		return decimal.Zero, fmt.Errorf("entry would exceed the customer's credit limit of %s: %w", creditLimit.String(), apperrors.ErrValidation)
	}

	m := toModelEntry(entry)
	insertQuery := `
        INSERT INTO ledger_entries (` + entryColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err = tx.Exec(ctx, insertQuery,
		m.EntryID, m.CustomerID, m.ShopID, m.Amount, m.TransactionType,
		m.TransactionDate, m.Description, m.Notes, m.ReferenceNumber, m.PaymentMethod,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}

	newBalance := balance.Add(delta)
	updateQuery := `
        UPDATE customers
        SET current_balance = $1, last_updated_at = $2, last_updated_by = $3
        WHERE customer_id = $4;
    `
	if _, err := tx.Exec(ctx, updateQuery, newBalance, m.CreatedAt, m.CreatedBy, m.CustomerID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to update customer balance: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1 AND is_active;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry by ID %s: %w", entryID, err)
	}
	e := toDomainEntry(*m)
	return &e, nil
}

func (r *PgxLedgerRepository) ListEntriesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT ` + entryColumns + `
        FROM ledger_entries
        WHERE customer_id = $1 AND is_active
        ORDER BY transaction_date DESC, created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxLedgerRepository) ListActiveDebitEntries(ctx context.Context, customerID string) ([]domain.LedgerEntry, error) {
	query := `
        SELECT ` + entryColumns + `
        FROM ledger_entries
        WHERE customer_id = $1 AND is_active AND transaction_type = 'DEBIT'
        ORDER BY transaction_date ASC, created_at ASC;
    `
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query debit entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debit entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating debit entry rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxLedgerRepository) SummarizeCustomer(ctx context.Context, customerID string) (decimal.Decimal, decimal.Decimal, int64, error) {
	query := `
        SELECT
            COALESCE(SUM(amount) FILTER (WHERE transaction_type IN ('CREDIT', 'OPENING_BALANCE')), 0),
            COALESCE(SUM(amount) FILTER (WHERE transaction_type IN ('DEBIT', 'ADJUSTMENT')), 0),
            COUNT(*)
        FROM ledger_entries
        WHERE customer_id = $1 AND is_active;
    `
	var totalCredit, totalDebit decimal.Decimal
	var count int64
	if err := r.Pool.QueryRow(ctx, query, customerID).Scan(&totalCredit, &totalDebit, &count); err != nil {
		return decimal.Zero, decimal.Zero, 0, fmt.Errorf("failed to summarize ledger entries: %w", err)
	}
	return totalCredit, totalDebit, count, nil
}

// recomputeCustomerBalance rewrites the customer's current balance from its
// active entries. Runs inside tx, after the customer row is locked.
func recomputeCustomerBalance(ctx context.Context, tx pgx.Tx, customerID, updatedBy string) error {
	query := `
        UPDATE customers SET
            current_balance = (
                SELECT COALESCE(SUM(CASE WHEN transaction_type IN ('CREDIT', 'OPENING_BALANCE') THEN amount ELSE -amount END), 0)
                FROM ledger_entries
                WHERE customer_id = $1 AND is_active
            ),
            last_updated_at = $2,
            last_updated_by = $3
        WHERE customer_id = $1;
    `
	if _, err := tx.Exec(ctx, query, customerID, time.Now(), updatedBy); err != nil {
		return fmt.Errorf("failed to recompute customer balance: %w", err)
	}
	return nil
}

func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockCustomerBalance(ctx, tx, entry.CustomerID); err != nil {
		return err
	}

	m := toModelEntry(entry)
	query := `
        UPDATE ledger_entries
        SET amount = $1, transaction_type = $2, transaction_date = $3, description = $4,
            notes = $5, reference_number = $6, payment_method = $7,
            last_updated_at = $8, last_updated_by = $9
        WHERE entry_id = $10 AND is_active;
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.Amount, m.TransactionType, m.TransactionDate, m.Description,
		m.Notes, m.ReferenceNumber, m.PaymentMethod,
		m.LastUpdatedAt, m.LastUpdatedBy, m.EntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("ledger entry not found or already deleted: %w", apperrors.ErrNotFound)
	}

	if err := recomputeCustomerBalance(ctx, tx, entry.CustomerID, entry.LastUpdatedBy); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxLedgerRepository) MarkEntryDeleted(ctx context.Context, entryID string, deletedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var customerID string
	findQuery := `SELECT customer_id FROM ledger_entries WHERE entry_id = $1 AND is_active;`
	if err := tx.QueryRow(ctx, findQuery, entryID).Scan(&customerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}

	if _, err := lockCustomerBalance(ctx, tx, customerID); err != nil {
		return err
	}

	deleteQuery := `
        UPDATE ledger_entries
        SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
        WHERE entry_id = $3 AND is_active;
    `
	cmdTag, err := tx.Exec(ctx, deleteQuery, time.Now(), deletedBy, entryID)
	if err != nil {
		return fmt.Errorf("failed to mark ledger entry as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("ledger entry not found or already deleted: %w", apperrors.ErrNotFound)
	}

	if err := recomputeCustomerBalance(ctx, tx, customerID, deletedBy); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
