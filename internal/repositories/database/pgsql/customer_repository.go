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
)

type PgxCustomerRepository struct {
	BaseRepository
}

// NewCustomerRepository creates a customer repository over the pool.
func NewCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func toModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:       d.CustomerID,
		ShopID:           d.ShopID,
		Name:             d.Name,
		Email:            sql.NullString{String: d.Email, Valid: d.Email != ""},
		PhoneNumber:      sql.NullString{String: d.PhoneNumber, Valid: d.PhoneNumber != ""},
		Address:          sql.NullString{String: d.Address, Valid: d.Address != ""},
		BusinessName:     sql.NullString{String: d.BusinessName, Valid: d.BusinessName != ""},
		GSTNumber:        sql.NullString{String: d.GSTNumber, Valid: d.GSTNumber != ""},
		PANNumber:        sql.NullString{String: d.PANNumber, Valid: d.PANNumber != ""},
		RelationshipType: string(d.RelationshipType),
		Notes:            sql.NullString{String: d.Notes, Valid: d.Notes != ""},
		CreditLimit:      d.CreditLimit,
		CurrentBalance:   d.CurrentBalance,
		IsActive:         d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:       m.CustomerID,
		ShopID:           m.ShopID,
		Name:             m.Name,
		Email:            m.Email.String,
		PhoneNumber:      m.PhoneNumber.String,
		Address:          m.Address.String,
		BusinessName:     m.BusinessName.String,
		GSTNumber:        m.GSTNumber.String,
		PANNumber:        m.PANNumber.String,
		RelationshipType: domain.RelationshipType(m.RelationshipType),
		Notes:            m.Notes.String,
		CreditLimit:      m.CreditLimit,
		CurrentBalance:   m.CurrentBalance,
		IsActive:         m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const customerColumns = `customer_id, shop_id, name, email, phone_number, address,
	business_name, gst_number, pan_number, relationship_type, notes, credit_limit,
	current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.ShopID,
		&m.Name,
		&m.Email,
		&m.PhoneNumber,
		&m.Address,
		&m.BusinessName,
		&m.GSTNumber,
		&m.PANNumber,
		&m.RelationshipType,
		&m.Notes,
		&m.CreditLimit,
		&m.CurrentBalance,
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

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := toModelCustomer(customer)
	query := `
        INSERT INTO customers (` + customerColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.ShopID, m.Name, m.Email, m.PhoneNumber, m.Address,
		m.BusinessName, m.GSTNumber, m.PANNumber, m.RelationshipType, m.Notes, m.CreditLimit,
		m.CurrentBalance, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer email already exists in shop: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 AND is_active;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	c := toDomainCustomer(*m)
	return &c, nil
}

func (r *PgxCustomerRepository) ListCustomersByShop(ctx context.Context, shopID string, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT ` + customerColumns + `
        FROM customers
        WHERE shop_id = $1 AND is_active
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, toDomainCustomer(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

func (r *PgxCustomerRepository) ExistsByEmailAndShop(ctx context.Context, email, shopID string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1 AND shop_id = $2 AND is_active);`
	if err := r.Pool.QueryRow(ctx, query, email, shopID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check customer email existence: %w", err)
	}
	return exists, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := toModelCustomer(customer)
	query := `
        UPDATE customers
        SET name = $1, email = $2, phone_number = $3, address = $4, business_name = $5,
            gst_number = $6, pan_number = $7, relationship_type = $8, notes = $9,
            credit_limit = $10, last_updated_at = $11, last_updated_by = $12
        WHERE customer_id = $13 AND is_active;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Email, m.PhoneNumber, m.Address, m.BusinessName,
		m.GSTNumber, m.PANNumber, m.RelationshipType, m.Notes,
		m.CreditLimit, m.LastUpdatedAt, m.LastUpdatedBy, m.CustomerID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer email already exists in shop: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCustomerRepository) MarkCustomerDeleted(ctx context.Context, customerID string, deletedBy string) error {
	query := `
        UPDATE customers
        SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
        WHERE customer_id = $3 AND is_active;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, time.Now(), deletedBy, customerID)
	if err != nil {
		return fmt.Errorf("failed to mark customer as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
