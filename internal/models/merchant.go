package models

import (
	"strconv"
	"time"
)

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// StockHolding is the stock of one product held by a merchant.
type StockHolding struct {
	ProductID ID          `json:"productId"`
	Product   *ProductRef `json:"product,omitempty"`
	Stock     int         `json:"stock"`
}

// StockMovement is one historical stock change at a merchant.
type StockMovement struct {
	ID        ID           `json:"id"`
	ProductID ID           `json:"productId"`
	Quantity  int          `json:"quantity"`
	Type      MovementType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Merchant is an agent or kiosk distributing subsidized products.
type Merchant struct {
	ID             ID              `json:"id"`
	Name           string          `json:"name"`
	OwnerName      string          `json:"ownerName"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	District       string          `json:"district"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	IsActive       bool            `json:"isActive"`
	MaxCapacity    int             `json:"maxCapacity"`
	Products       []StockHolding  `json:"products"`
	StockMovements []StockMovement `json:"stockMovements,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func (m Merchant) EntityID() ID {
	return m.ID
}

// TotalStock sums stock across all holdings.
func (m Merchant) TotalStock() int {
	total := 0
	for _, p := range m.Products {
		total += p.Stock
	}
	return total
}

// HasLocation reports whether both coordinates are present.
func (m Merchant) HasLocation() bool {
	return m.Latitude != nil && m.Longitude != nil
}

func (m Merchant) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return string(m.ID), m.ID != ""
	case "name":
		return m.Name, m.Name != ""
	case "ownerName":
		return m.OwnerName, m.OwnerName != ""
	case "phone":
		return m.Phone, m.Phone != ""
	case "address":
		return m.Address, m.Address != ""
	case "district":
		return m.District, m.District != ""
	case "isActive":
		return strconv.FormatBool(m.IsActive), true
	}
	return "", false
}

func (m Merchant) TimeValue(field string) (time.Time, bool) {
	if field == "createdAt" {
		return m.CreatedAt, !m.CreatedAt.IsZero()
	}
	return time.Time{}, false
}

// CreateMerchantRequest represents the request body for creating a merchant
type CreateMerchantRequest struct {
	Name        string         `json:"name"`
	OwnerName   string         `json:"ownerName"`
	Phone       string         `json:"phone"`
	Address     string         `json:"address"`
	District    string         `json:"district"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	IsActive    bool           `json:"isActive"`
	MaxCapacity int            `json:"maxCapacity"`
	Products    []StockHolding `json:"products,omitempty"`
}

func (req *CreateMerchantRequest) Validate() error {
	if req.Name == "" || req.Address == "" {
		return validationError("name and address are required")
	}
	if req.MaxCapacity < 0 {
		return validationError("maxCapacity must not be negative")
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return validationError("latitude and longitude must be set together")
	}
	return validateHoldings(req.Products)
}

// UpdateMerchantRequest is a partial update; nil fields are left unchanged upstream.
type UpdateMerchantRequest struct {
	Name        *string        `json:"name,omitempty"`
	OwnerName   *string        `json:"ownerName,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Address     *string        `json:"address,omitempty"`
	District    *string        `json:"district,omitempty"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty"`
	MaxCapacity *int           `json:"maxCapacity,omitempty"`
	Products    []StockHolding `json:"products,omitempty"`
}

func (req *UpdateMerchantRequest) Validate() error {
	if req.Name != nil && *req.Name == "" {
		return validationError("name cannot be empty")
	}
	if req.MaxCapacity != nil && *req.MaxCapacity < 0 {
		return validationError("maxCapacity must not be negative")
	}
	return validateHoldings(req.Products)
}

func validateHoldings(products []StockHolding) error {
	seen := make(map[ID]bool, len(products))
	for _, p := range products {
		if p.ProductID == "" {
			return validationError("stock line productId is required")
		}
		if p.Stock < 0 {
			return validationError("stock must not be negative")
		}
		if seen[p.ProductID] {
			return validationError("product %s listed twice", p.ProductID)
		}
		seen[p.ProductID] = true
	}
	return nil
}
