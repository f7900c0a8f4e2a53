package dto

import (
	"time"

	"github.com/ledgerly/ledgerly-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest carries a new customer or supplier record. ShopID is
// only honored for owners; staff always create in their assigned shop.
type CreateCustomerRequest struct {
	Name             string           `json:"name" binding:"required,min=2,max=100"`
	Email            string           `json:"email" binding:"omitempty,email"`
	PhoneNumber      string           `json:"phoneNumber"`
	Address          string           `json:"address"`
	BusinessName     string           `json:"businessName"`
	GSTNumber        string           `json:"gstNumber"`
	PANNumber        string           `json:"panNumber"`
	RelationshipType string           `json:"relationshipType"`
	Notes            string           `json:"notes"`
	CreditLimit      *decimal.Decimal `json:"creditLimit"`
	ShopID           string           `json:"shopID"`
}

// UpdateCustomerRequest overwrites the provided mutable fields. Pointers
// distinguish omitted fields from zero values.
type UpdateCustomerRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=2,max=100"`
	Email            *string          `json:"email" binding:"omitempty,email"`
	PhoneNumber      *string          `json:"phoneNumber"`
	Address          *string          `json:"address"`
	BusinessName     *string          `json:"businessName"`
	GSTNumber        *string          `json:"gstNumber"`
	PANNumber        *string          `json:"panNumber"`
	RelationshipType *string          `json:"relationshipType"`
	Notes            *string          `json:"notes"`
	CreditLimit      *decimal.Decimal `json:"creditLimit"`
}

// ListCustomersParams defines query parameters for listing customers. ShopID
// is required for owners of more than one shop.
type ListCustomersParams struct {
	ShopID string `form:"shopID"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// CustomerResponse is the public view of a customer.
type CustomerResponse struct {
	CustomerID       string          `json:"customerID"`
	ShopID           string          `json:"shopID"`
	Name             string          `json:"name"`
	Email            string          `json:"email,omitempty"`
	PhoneNumber      string          `json:"phoneNumber,omitempty"`
	Address          string          `json:"address,omitempty"`
	BusinessName     string          `json:"businessName,omitempty"`
	GSTNumber        string          `json:"gstNumber,omitempty"`
	PANNumber        string          `json:"panNumber,omitempty"`
	RelationshipType string          `json:"relationshipType"`
	Notes            string          `json:"notes,omitempty"`
	CreditLimit      decimal.Decimal `json:"creditLimit"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToCustomerResponse converts a domain.Customer to its public view.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:       c.CustomerID,
		ShopID:           c.ShopID,
		Name:             c.Name,
		Email:            c.Email,
		PhoneNumber:      c.PhoneNumber,
		Address:          c.Address,
		BusinessName:     c.BusinessName,
		GSTNumber:        c.GSTNumber,
		PANNumber:        c.PANNumber,
		RelationshipType: string(c.RelationshipType),
		Notes:            c.Notes,
		CreditLimit:      c.CreditLimit,
		CurrentBalance:   c.CurrentBalance,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		CreatedBy:        c.CreatedBy,
	}
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToListCustomersResponse converts a slice of domain.Customer to the list DTO.
func ToListCustomersResponse(customers []domain.Customer) ListCustomersResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return ListCustomersResponse{Customers: out}
}
