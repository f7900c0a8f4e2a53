package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portsrepo "github.com/ledgerly/ledgerly-backend/internal/core/ports/repositories"
	"github.com/ledgerly/ledgerly-backend/internal/models"
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// NewPaymentRepository creates a payment repository over the pool.
func NewPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func toModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		CustomerID:       d.CustomerID,
		ShopID:           d.ShopID,
		Amount:           d.Amount,
		AppliedAmount:    d.AppliedAmount,
		PaymentDate:      d.PaymentDate,
		Description:      d.Description,
		Notes:            sql.NullString{String: d.Notes, Valid: d.Notes != ""},
		ReferenceNumber:  sql.NullString{String: d.ReferenceNumber, Valid: d.ReferenceNumber != ""},
		PaymentMethod:    sql.NullString{String: d.PaymentMethod, Valid: d.PaymentMethod != ""},
		BankDetails:      sql.NullString{String: d.BankDetails, Valid: d.BankDetails != ""},
		CheckNumber:      sql.NullString{String: d.CheckNumber, Valid: d.CheckNumber != ""},
		Status:           string(d.Status),
		IsAdvancePayment: d.IsAdvancePayment,
		IsActive:         d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		CustomerID:       m.CustomerID,
		ShopID:           m.ShopID,
		Amount:           m.Amount,
		AppliedAmount:    m.AppliedAmount,
		PaymentDate:      m.PaymentDate,
		Description:      m.Description,
		Notes:            m.Notes.String,
		ReferenceNumber:  m.ReferenceNumber.String,
		PaymentMethod:    m.PaymentMethod.String,
		BankDetails:      m.BankDetails.String,
		CheckNumber:      m.CheckNumber.String,
		Status:           domain.PaymentStatus(m.Status),
		IsAdvancePayment: m.IsAdvancePayment,
		IsActive:         m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const paymentColumns = `payment_id, customer_id, shop_id, amount, applied_amount,
	payment_date, description, notes, reference_number, payment_method,
	bank_details, check_number, status, is_advance_payment, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.CustomerID,
		&m.ShopID,
		&m.Amount,
		&m.AppliedAmount,
		&m.PaymentDate,
		&m.Description,
		&m.Notes,
		&m.ReferenceNumber,
		&m.PaymentMethod,
		&m.BankDetails,
		&m.CheckNumber,
		&m.Status,
		&m.IsAdvancePayment,
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

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := toModelPayment(payment)
	query := `
        INSERT INTO payments (` + paymentColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID, m.CustomerID, m.ShopID, m.Amount, m.AppliedAmount,
		m.PaymentDate, m.Description, m.Notes, m.ReferenceNumber, m.PaymentMethod,
		m.BankDetails, m.CheckNumber, m.Status, m.IsAdvancePayment, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", m.PaymentID, err)
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1 AND is_active;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	p := toDomainPayment(*m)
	return &p, nil
}

func (r *PgxPaymentRepository) ListPaymentsByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT ` + paymentColumns + `
        FROM payments
        WHERE customer_id = $1 AND is_active
        ORDER BY payment_date DESC, created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *PgxPaymentRepository) ListUnappliedPaymentsByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM payments
        WHERE customer_id = $1 AND is_active
          AND status <> 'CANCELLED'
          AND applied_amount < amount
        ORDER BY payment_date ASC, created_at ASC;
    `
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unapplied payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func collectPayments(rows pgx.Rows) ([]domain.Payment, error) {
	payments := []domain.Payment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, toDomainPayment(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}
	return payments, nil
}

const applicationColumns = `application_id, payment_id, entry_id, applied_amount,
	notes, is_reversed, reversed_at, reversed_by,
	created_at, created_by, last_updated_at, last_updated_by`

func scanApplication(row pgx.Row) (*models.PaymentApplication, error) {
	var m models.PaymentApplication
	err := row.Scan(
		&m.ApplicationID,
		&m.PaymentID,
		&m.EntryID,
		&m.AppliedAmount,
		&m.Notes,
		&m.IsReversed,
		&m.ReversedAt,
		&m.ReversedBy,
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

func toDomainApplication(m models.PaymentApplication) domain.PaymentApplication {
	a := domain.PaymentApplication{
		ApplicationID: m.ApplicationID,
		PaymentID:     m.PaymentID,
		EntryID:       m.EntryID,
		AppliedAmount: m.AppliedAmount,
		Notes:         m.Notes.String,
		IsReversed:    m.IsReversed,
		ReversedBy:    m.ReversedBy.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ReversedAt.Valid {
		t := m.ReversedAt.Time
		a.ReversedAt = &t
	}
	return a
}

func (r *PgxPaymentRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.PaymentApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM payment_applications WHERE application_id = $1;`
	m, err := scanApplication(r.Pool.QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment application by ID %s: %w", applicationID, err)
	}
	a := toDomainApplication(*m)
	return &a, nil
}

func (r *PgxPaymentRepository) SumAppliedByEntry(ctx context.Context, customerID string) (map[string]decimal.Decimal, error) {
	query := `
        SELECT pa.entry_id, COALESCE(SUM(pa.applied_amount), 0)
        FROM payment_applications pa
        JOIN payments p ON p.payment_id = pa.payment_id
        WHERE p.customer_id = $1 AND NOT pa.is_reversed
        GROUP BY pa.entry_id;
    `
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum applied amounts: %w", err)
	}
	defer rows.Close()

	applied := map[string]decimal.Decimal{}
	for rows.Next() {
		var entryID string
		var sum decimal.Decimal
		if err := rows.Scan(&entryID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan applied amount row: %w", err)
		}
		applied[entryID] = sum
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating applied amount rows: %w", rows.Err())
	}
	return applied, nil
}

// lockPayment locks the payment row and returns its current applied amount,
// serializing concurrent applications against the same payment.
func lockPayment(ctx context.Context, tx pgx.Tx, paymentID string) (decimal.Decimal, error) {
	var applied decimal.Decimal
	query := `SELECT applied_amount FROM payments WHERE payment_id = $1 AND is_active FOR UPDATE;`
	if err := tx.QueryRow(ctx, query, paymentID).Scan(&applied); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to lock payment %s: %w", paymentID, err)
	}
	return applied, nil
}

// updatePaymentApplied rewrites the payment's applied amount and status.
func updatePaymentApplied(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	query := `
        UPDATE payments
        SET applied_amount = $1, status = $2, last_updated_at = $3, last_updated_by = $4
        WHERE payment_id = $5;
    `
	_, err := tx.Exec(ctx, query,
		payment.AppliedAmount, string(payment.Status),
		payment.LastUpdatedAt, payment.LastUpdatedBy, payment.PaymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment applied amount: %w", err)
	}
	return nil
}

// ApplyPayment inserts the applications and rewrites the payment's applied
// amount within one transaction. The payment row is locked first; if a
// concurrent application already consumed the unapplied balance, the write
// fails with a validation error instead of over-applying.
func (r *PgxPaymentRepository) ApplyPayment(ctx context.Context, payment domain.Payment, applications []domain.PaymentApplication) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockedApplied, err := lockPayment(ctx, tx, payment.PaymentID)
	if err != nil {
		return err
	}
	if payment.AppliedAmount.LessThan(lockedApplied) {
		return fmt.Errorf("payment has insufficient unapplied amount: %w", apperrors.ErrValidation)
	}

	insertQuery := `
        INSERT INTO payment_applications (` + applicationColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	for _, a := range applications {
		_, err := tx.Exec(ctx, insertQuery,
			a.ApplicationID, a.PaymentID, a.EntryID, a.AppliedAmount,
			sql.NullString{String: a.Notes, Valid: a.Notes != ""},
			a.IsReversed, sql.NullTime{}, sql.NullString{},
			a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment application %s: %w", a.ApplicationID, err)
		}
	}

	if err := updatePaymentApplied(ctx, tx, payment); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxPaymentRepository) ReverseApplication(ctx context.Context, application domain.PaymentApplication, payment domain.Payment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockPayment(ctx, tx, payment.PaymentID); err != nil {
		return err
	}

	reverseQuery := `
        UPDATE payment_applications
        SET is_reversed = TRUE, reversed_at = $1, reversed_by = $2,
            last_updated_at = $3, last_updated_by = $4
        WHERE application_id = $5 AND NOT is_reversed;
    `
	cmdTag, err := tx.Exec(ctx, reverseQuery,
		application.ReversedAt, application.ReversedBy,
		application.LastUpdatedAt, application.LastUpdatedBy, application.ApplicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to reverse payment application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment application not found or already reversed: %w", apperrors.ErrNotFound)
	}

	if err := updatePaymentApplied(ctx, tx, payment); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
