package domain

import "time"

// Shop is a business location owned by a user. Customers and ledger entries
// belong to exactly one shop.
type Shop struct {
	ShopID      string `json:"shopID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Email       string `json:"email,omitempty"`
	OwnerUserID string `json:"ownerUserID"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// StaffShopMapping grants a staff user rights over a specific shop.
// A staff user has at most one active mapping; an inactive mapping carries no
// authorization.
type StaffShopMapping struct {
	MappingID   string    `json:"mappingID"`
	StaffUserID string    `json:"staffUserID"`
	ShopID      string    `json:"shopID"`
	AssignedAt  time.Time `json:"assignedAt"`
	IsActive    bool      `json:"isActive"`
}
