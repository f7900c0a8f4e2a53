package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	portsrepo "github.com/ledgerly/ledgerly-backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerly/ledgerly-backend/internal/core/ports/services"
	"github.com/ledgerly/ledgerly-backend/internal/dto"
)

// shopService implements the ShopSvcFacade.
type shopService struct {
	BaseService
	shopRepo portsrepo.ShopRepositoryFacade
	userRepo portsrepo.UserReader
	auditSvc portssvc.AuditSvcFacade
}

// NewShopService creates a new shop service with the provided dependencies.
func NewShopService(shopRepo portsrepo.ShopRepositoryFacade, userRepo portsrepo.UserReader, auditSvc portssvc.AuditSvcFacade) portssvc.ShopSvcFacade {
	return &shopService{
		shopRepo: shopRepo,
		userRepo: userRepo,
		auditSvc: auditSvc,
	}
}

var _ portssvc.ShopSvcFacade = (*shopService)(nil)

// CreateShop creates a shop owned by the acting user.
func (s *shopService) CreateShop(ctx context.Context, req dto.CreateShopRequest, actingUserID string) (*domain.Shop, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleOwner && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("only owners may create shops: %w", apperrors.ErrForbidden)
	}

	now := time.Now()
	shop := domain.Shop{
		ShopID:      uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		OwnerUserID: actingUserID,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.shopRepo.SaveShop(ctx, shop); err != nil {
		s.LogError(ctx, err, "Failed to save shop",
			slog.String("owner_user_id", actingUserID))
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "CREATE_SHOP", "SHOP", shop.ShopID, shop.Name, actingUserID)
	s.LogInfo(ctx, "Shop created",
		slog.String("shop_id", shop.ShopID),
		slog.String("owner_user_id", actingUserID))
	return &shop, nil
}

// GetShopByID returns the shop when the acting user owns it or is actively
// assigned to it. Shops outside the user's reach are reported as not found.
func (s *shopService) GetShopByID(ctx context.Context, shopID, actingUserID string) (*domain.Shop, error) {
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerUserID == actingUserID {
		return shop, nil
	}
	mapping, err := s.shopRepo.FindActiveMappingByStaff(ctx, actingUserID)
	if err == nil && mapping.ShopID == shopID {
		return shop, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return nil, apperrors.ErrNotFound
}

// ListShopsForUser returns the shops the user may act on.
func (s *shopService) ListShopsForUser(ctx context.Context, actingUserID string) ([]domain.Shop, error) {
	user, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleStaff {
		mapping, err := s.shopRepo.FindActiveMappingByStaff(ctx, actingUserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return []domain.Shop{}, nil
			}
			return nil, err
		}
		shop, err := s.shopRepo.FindShopByID(ctx, mapping.ShopID)
		if err != nil {
			return nil, err
		}
		return []domain.Shop{*shop}, nil
	}

	shops, err := s.shopRepo.ListShopsByOwner(ctx, actingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list shops for owner",
			slog.String("owner_user_id", actingUserID))
		return nil, err
	}
	if shops == nil {
		shops = []domain.Shop{}
	}
	return shops, nil
}

// requireShopOwner resolves the shop and checks the acting user owns it.
func (s *shopService) requireShopOwner(ctx context.Context, shopID, actingUserID string) (*domain.Shop, error) {
	shop, err := s.shopRepo.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.OwnerUserID != actingUserID {
		return nil, fmt.Errorf("user %s does not own shop %s: %w", actingUserID, shopID, apperrors.ErrForbidden)
	}
	return shop, nil
}

// AssignStaff maps an active STAFF user onto the shop, replacing any previous
// assignment.
func (s *shopService) AssignStaff(ctx context.Context, shopID, staffUserID, actingUserID string) (*domain.StaffShopMapping, error) {
	if _, err := s.requireShopOwner(ctx, shopID, actingUserID); err != nil {
		return nil, err
	}

	staff, err := s.userRepo.FindUserByID(ctx, staffUserID)
	if err != nil {
		return nil, err
	}
	if staff.Role != domain.RoleStaff {
		return nil, fmt.Errorf("user %s is not staff: %w", staffUserID, apperrors.ErrValidation)
	}
	if !staff.IsActive {
		return nil, fmt.Errorf("staff user %s is deactivated: %w", staffUserID, apperrors.ErrValidation)
	}

	// A staff user works for one shop at a time.
	if err := s.shopRepo.DeactivateMappingsForStaff(ctx, staffUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate previous staff mappings",
			slog.String("staff_user_id", staffUserID))
		return nil, err
	}

	mapping := domain.StaffShopMapping{
		MappingID:   uuid.NewString(),
		StaffUserID: staffUserID,
		ShopID:      shopID,
		AssignedAt:  time.Now(),
		IsActive:    true,
	}
	if err := s.shopRepo.SaveMapping(ctx, mapping); err != nil {
		s.LogError(ctx, err, "Failed to save staff mapping",
			slog.String("staff_user_id", staffUserID),
			slog.String("shop_id", shopID))
		return nil, err
	}

	s.auditSvc.LogSuccess(ctx, "ASSIGN_STAFF", "SHOP", shopID, "staff "+staffUserID, actingUserID)
	return &mapping, nil
}

// RevokeStaff deactivates the staff user's mapping to the shop.
func (s *shopService) RevokeStaff(ctx context.Context, shopID, staffUserID, actingUserID string) error {
	if _, err := s.requireShopOwner(ctx, shopID, actingUserID); err != nil {
		return err
	}

	mapping, err := s.shopRepo.FindActiveMappingByStaff(ctx, staffUserID)
	if err != nil {
		return err
	}
	if mapping.ShopID != shopID {
		return fmt.Errorf("staff %s is not assigned to shop %s: %w", staffUserID, shopID, apperrors.ErrNotFound)
	}

	if err := s.shopRepo.DeactivateMappingsForStaff(ctx, staffUserID); err != nil {
		s.LogError(ctx, err, "Failed to revoke staff mapping",
			slog.String("staff_user_id", staffUserID),
			slog.String("shop_id", shopID))
		return err
	}

	s.auditSvc.LogSuccess(ctx, "REVOKE_STAFF", "SHOP", shopID, "staff "+staffUserID, actingUserID)
	return nil
}

// ResolveActingShop returns the single shop the user is authorized to act on.
// Staff resolve through their active mapping; owners through their owned
// shops, with explicitShopID picking one when they own several.
func (s *shopService) ResolveActingShop(ctx context.Context, actingUserID, explicitShopID string) (*domain.Shop, error) {
	user, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	if user.Role == domain.RoleStaff {
		mapping, err := s.shopRepo.FindActiveMappingByStaff(ctx, actingUserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("staff user %s has no shop assignment: %w", actingUserID, apperrors.ErrForbidden)
			}
			return nil, err
		}
		if explicitShopID != "" && explicitShopID != mapping.ShopID {
			return nil, fmt.Errorf("staff user %s may not act on shop %s: %w", actingUserID, explicitShopID, apperrors.ErrForbidden)
		}
		return s.shopRepo.FindShopByID(ctx, mapping.ShopID)
	}

	if explicitShopID != "" {
		return s.requireShopOwner(ctx, explicitShopID, actingUserID)
	}

	shops, err := s.shopRepo.ListShopsByOwner(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	switch len(shops) {
	case 0:
		return nil, fmt.Errorf("user %s owns no shop: %w", actingUserID, apperrors.ErrForbidden)
	case 1:
		return &shops[0], nil
	default:
		return nil, fmt.Errorf("user %s owns multiple shops, shopID required: %w", actingUserID, apperrors.ErrValidation)
	}
}
