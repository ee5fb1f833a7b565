package models

import (
	"github.com/shopspring/decimal"
)

// ProductType separates the two subsidy programs.
type ProductType string

const (
	ProductFertilizer ProductType = "fertilizer"
	ProductLPG        ProductType = "lpg"
)

type Product struct {
	ID                 ID              `json:"id"`
	Name               string          `json:"name"`
	Type               ProductType     `json:"type,omitempty"`
	Unit               string          `json:"unit"`
	BasePrice          decimal.Decimal `json:"basePrice"`
	SubsidyPrice       decimal.Decimal `json:"subsidyPrice"`
	MonthlyQuota       int             `json:"monthlyQuota"`
	MaxAdditionalQuota int             `json:"maxAdditionalQuota"`
}

func (p Product) EntityID() ID {
	return p.ID
}

// SubsidyPerUnit is the amount the program covers on each unit sold.
func (p Product) SubsidyPerUnit() decimal.Decimal {
	return p.BasePrice.Sub(p.SubsidyPrice)
}

func (p Product) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return string(p.ID), p.ID != ""
	case "name":
		return p.Name, p.Name != ""
	case "type":
		return string(p.Type), p.Type != ""
	case "unit":
		return p.Unit, p.Unit != ""
	}
	return "", false
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name               string          `json:"name"`
	Type               ProductType     `json:"type,omitempty"`
	Unit               string          `json:"unit"`
	BasePrice          decimal.Decimal `json:"basePrice"`
	SubsidyPrice       decimal.Decimal `json:"subsidyPrice"`
	MonthlyQuota       int             `json:"monthlyQuota"`
	MaxAdditionalQuota int             `json:"maxAdditionalQuota"`
}

func (req *CreateProductRequest) Validate() error {
	if req.Name == "" || req.Unit == "" {
		return validationError("name and unit are required")
	}
	if req.BasePrice.IsNegative() || req.SubsidyPrice.IsNegative() {
		return validationError("prices must not be negative")
	}
	if req.SubsidyPrice.GreaterThan(req.BasePrice) {
		return validationError("subsidyPrice cannot exceed basePrice")
	}
	if req.MonthlyQuota < 0 || req.MaxAdditionalQuota < 0 {
		return validationError("quotas must not be negative")
	}
	return nil
}

// UpdateProductRequest is a partial update; nil fields are left unchanged upstream.
type UpdateProductRequest struct {
	Name               *string          `json:"name,omitempty"`
	Unit               *string          `json:"unit,omitempty"`
	BasePrice          *decimal.Decimal `json:"basePrice,omitempty"`
	SubsidyPrice       *decimal.Decimal `json:"subsidyPrice,omitempty"`
	MonthlyQuota       *int             `json:"monthlyQuota,omitempty"`
	MaxAdditionalQuota *int             `json:"maxAdditionalQuota,omitempty"`
}

func (req *UpdateProductRequest) Validate() error {
	if req.Name != nil && *req.Name == "" {
		return validationError("name cannot be empty")
	}
	if req.BasePrice != nil && req.SubsidyPrice != nil && req.SubsidyPrice.GreaterThan(*req.BasePrice) {
		return validationError("subsidyPrice cannot exceed basePrice")
	}
	if (req.MonthlyQuota != nil && *req.MonthlyQuota < 0) || (req.MaxAdditionalQuota != nil && *req.MaxAdditionalQuota < 0) {
		return validationError("quotas must not be negative")
	}
	return nil
}
