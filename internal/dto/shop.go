package dto

import (
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
)

// CreateShopRequest carries a new shop for the acting owner.
type CreateShopRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// AssignStaffRequest assigns a staff user to the shop in the URL.
type AssignStaffRequest struct {
	StaffUserID string `json:"staffUserID" binding:"required"`
}

// ShopResponse is the public view of a shop.
type ShopResponse struct {
	ShopID      string    `json:"shopID"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Email       string    `json:"email,omitempty"`
	OwnerUserID string    `json:"ownerUserID"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToShopResponse converts a domain.Shop to its public view.
func ToShopResponse(s *domain.Shop) ShopResponse {
	return ShopResponse{
		ShopID:      s.ShopID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		PhoneNumber: s.PhoneNumber,
		Email:       s.Email,
		OwnerUserID: s.OwnerUserID,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

// ListShopsResponse wraps the list of shops.
type ListShopsResponse struct {
	Shops []ShopResponse `json:"shops"`
}

// ToListShopsResponse converts a slice of domain.Shop to the list DTO.
func ToListShopsResponse(shops []domain.Shop) ListShopsResponse {
	out := make([]ShopResponse, len(shops))
	for i := range shops {
		out[i] = ToShopResponse(&shops[i])
	}
	return ListShopsResponse{Shops: out}
}
