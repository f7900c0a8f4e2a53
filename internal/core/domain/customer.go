package domain

import "github.com/shopspring/decimal"

// RelationshipType classifies the business relationship with a customer record.
type RelationshipType string

const (
	RelationshipCustomer RelationshipType = "CUSTOMER"
	RelationshipSupplier RelationshipType = "SUPPLIER"
	RelationshipVendor   RelationshipType = "VENDOR"
	RelationshipPartner  RelationshipType = "PARTNER"
	RelationshipOther    RelationshipType = "OTHER"
)

// IsValid reports whether t is one of the known relationship types.
func (t RelationshipType) IsValid() bool {
	switch t {
	case RelationshipCustomer, RelationshipSupplier, RelationshipVendor, RelationshipPartner, RelationshipOther:
		return true
	}
	return false
}

// Customer is a customer or supplier record scoped to a shop. CurrentBalance
// is the running total maintained by ledger entries; a positive balance is
// money the customer owes the shop.
type Customer struct {
	CustomerID       string           `json:"customerID"`
	ShopID           string           `json:"shopID"`
	Name             string           `json:"name"`
	Email            string           `json:"email,omitempty"`
	PhoneNumber      string           `json:"phoneNumber,omitempty"`
	Address          string           `json:"address,omitempty"`
	BusinessName     string           `json:"businessName,omitempty"`
	GSTNumber        string           `json:"gstNumber,omitempty"`
	PANNumber        string           `json:"panNumber,omitempty"`
	RelationshipType RelationshipType `json:"relationshipType"`
	Notes            string           `json:"notes,omitempty"`
	CreditLimit      decimal.Decimal  `json:"creditLimit"`
	CurrentBalance   decimal.Decimal  `json:"currentBalance"`
	IsActive         bool             `json:"isActive"`
	AuditFields
}
