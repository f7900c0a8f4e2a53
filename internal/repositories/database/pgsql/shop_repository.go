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
)

type PgxShopRepository struct {
	BaseRepository
}

// NewShopRepository creates a shop repository over the pool.
func NewShopRepository(pool *pgxpool.Pool) portsrepo.ShopRepositoryFacade {
	return &PgxShopRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ShopRepositoryFacade = (*PgxShopRepository)(nil)

func toModelShop(d domain.Shop) models.Shop {
	return models.Shop{
		ShopID:      d.ShopID,
		Name:        d.Name,
		Description: sql.NullString{String: d.Description, Valid: d.Description != ""},
		Address:     sql.NullString{String: d.Address, Valid: d.Address != ""},
		PhoneNumber: sql.NullString{String: d.PhoneNumber, Valid: d.PhoneNumber != ""},
		Email:       sql.NullString{String: d.Email, Valid: d.Email != ""},
		OwnerUserID: d.OwnerUserID,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainShop(m models.Shop) domain.Shop {
	return domain.Shop{
		ShopID:      m.ShopID,
		Name:        m.Name,
		Description: m.Description.String,
		Address:     m.Address.String,
		PhoneNumber: m.PhoneNumber.String,
		Email:       m.Email.String,
		OwnerUserID: m.OwnerUserID,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const shopColumns = `shop_id, name, description, address, phone_number, email,
	owner_user_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanShop(row pgx.Row) (*models.Shop, error) {
	var m models.Shop
	err := row.Scan(
		&m.ShopID,
		&m.Name,
		&m.Description,
		&m.Address,
		&m.PhoneNumber,
		&m.Email,
		&m.OwnerUserID,
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

func (r *PgxShopRepository) SaveShop(ctx context.Context, shop domain.Shop) error {
	m := toModelShop(shop)
	query := `
        INSERT INTO shops (` + shopColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ShopID, m.Name, m.Description, m.Address, m.PhoneNumber, m.Email,
		m.OwnerUserID, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save shop: %w", err)
	}
	return nil
}

func (r *PgxShopRepository) FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE shop_id = $1 AND is_active;`
	m, err := scanShop(r.Pool.QueryRow(ctx, query, shopID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shop by ID %s: %w", shopID, err)
	}
	s := toDomainShop(*m)
	return &s, nil
}

func (r *PgxShopRepository) ListShopsByOwner(ctx context.Context, ownerUserID string) ([]domain.Shop, error) {
	query := `
        SELECT ` + shopColumns + `
        FROM shops
        WHERE owner_user_id = $1 AND is_active
        ORDER BY created_at;
    `
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shops: %w", err)
	}
	defer rows.Close()

	shops := []domain.Shop{}
	for rows.Next() {
		m, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop row: %w", err)
		}
		shops = append(shops, toDomainShop(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating shop rows: %w", rows.Err())
	}
	return shops, nil
}

func (r *PgxShopRepository) FindActiveMappingByStaff(ctx context.Context, staffUserID string) (*domain.StaffShopMapping, error) {
	query := `
        SELECT mapping_id, staff_user_id, shop_id, assigned_at, is_active
        FROM staff_shop_mappings
        WHERE staff_user_id = $1 AND is_active;
    `
	var m models.StaffShopMapping
	err := r.Pool.QueryRow(ctx, query, staffUserID).Scan(
		&m.MappingID, &m.StaffUserID, &m.ShopID, &m.AssignedAt, &m.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff shop mapping: %w", err)
	}
	return &domain.StaffShopMapping{
		MappingID:   m.MappingID,
		StaffUserID: m.StaffUserID,
		ShopID:      m.ShopID,
		AssignedAt:  m.AssignedAt,
		IsActive:    m.IsActive,
	}, nil
}

func (r *PgxShopRepository) SaveMapping(ctx context.Context, mapping domain.StaffShopMapping) error {
	query := `
        INSERT INTO staff_shop_mappings (mapping_id, staff_user_id, shop_id, assigned_at, is_active)
        VALUES ($1, $2, $3, $4, $5);
    `
	_, err := r.Pool.Exec(ctx, query,
		mapping.MappingID, mapping.StaffUserID, mapping.ShopID, mapping.AssignedAt, mapping.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("staff already has an active shop assignment: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save staff shop mapping: %w", err)
	}
	return nil
}

func (r *PgxShopRepository) DeactivateMappingsForStaff(ctx context.Context, staffUserID string) error {
	query := `
        UPDATE staff_shop_mappings
        SET is_active = FALSE
        WHERE staff_user_id = $1 AND is_active;
    `
	if _, err := r.Pool.Exec(ctx, query, staffUserID); err != nil {
		return fmt.Errorf("failed to deactivate staff shop mappings: %w", err)
	}
	return nil
}
