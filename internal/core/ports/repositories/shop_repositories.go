package repositories

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
)

// ShopReader defines read operations for shop data.
type ShopReader interface {
	// FindShopByID retrieves a specific shop by its ID.
	FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error)

	// ListShopsByOwner retrieves active shops owned by a user.
	ListShopsByOwner(ctx context.Context, ownerUserID string) ([]domain.Shop, error)
}

// ShopWriter defines write operations for shop data.
type ShopWriter interface {
	// SaveShop persists a new shop.
	SaveShop(ctx context.Context, shop domain.Shop) error
}

// StaffMappingManager manages staff-shop authorization records.
type StaffMappingManager interface {
	// FindActiveMappingByStaff retrieves the staff user's active shop mapping.
	FindActiveMappingByStaff(ctx context.Context, staffUserID string) (*domain.StaffShopMapping, error)

	// SaveMapping persists a new staff-shop mapping.
	SaveMapping(ctx context.Context, mapping domain.StaffShopMapping) error

	// DeactivateMappingsForStaff marks all of the staff user's mappings inactive.
	DeactivateMappingsForStaff(ctx context.Context, staffUserID string) error
}

// ShopRepositoryFacade combines all shop-related repository interfaces.
type ShopRepositoryFacade interface {
	ShopReader
	ShopWriter
	StaffMappingManager
}
