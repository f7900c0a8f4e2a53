package services

import (
	"context"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
)

// ShopSvcFacade manages shops and staff-shop assignments, and answers the
// authorization question every customer/ledger operation starts with: which
// shop may this user act on?
type ShopSvcFacade interface {
	// CreateShop creates a shop owned by the acting user (OWNER or ADMIN).
	CreateShop(ctx context.Context, req dto.CreateShopRequest, actingUserID string) (*domain.Shop, error)

	// GetShopByID returns the shop when the acting user owns it or is
	// actively assigned to it.
	GetShopByID(ctx context.Context, shopID, actingUserID string) (*domain.Shop, error)

	// ListShopsForUser returns the shops the user may act on.
	ListShopsForUser(ctx context.Context, actingUserID string) ([]domain.Shop, error)

	// AssignStaff maps an active STAFF user onto the shop, replacing any
	// previous assignment. Only the shop's owner may assign.
	AssignStaff(ctx context.Context, shopID, staffUserID, actingUserID string) (*domain.StaffShopMapping, error)

	// RevokeStaff deactivates the staff user's mapping to the shop.
	RevokeStaff(ctx context.Context, shopID, staffUserID, actingUserID string) error

	// ResolveActingShop returns the single shop the user is authorized to
	// act on: the active mapping's shop for STAFF, the owned shop for OWNER
	// (explicitShopID disambiguates owners of several shops). Fails with
	// apperrors.ErrForbidden when no authorization exists.
	ResolveActingShop(ctx context.Context, actingUserID, explicitShopID string) (*domain.Shop, error)
}
