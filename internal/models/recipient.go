package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Classification is the economic tier assigned to a recipient upstream.
type Classification string

const (
	ClassificationWellOff Classification = "well-off"
	ClassificationMiddle  Classification = "middle"
	ClassificationPoor    Classification = "poor"
)

// RecipientStatus is the enrolment state of a recipient.
type RecipientStatus string

const (
	RecipientActive    RecipientStatus = "active"
	RecipientInactive  RecipientStatus = "inactive"
	RecipientSuspended RecipientStatus = "suspended"
)

// SubsidyEntitlement is a recipient's monthly allotment of one product.
// RemainingQuota <= MonthlyQuota is assumed, not enforced, here.
type SubsidyEntitlement struct {
	ProductID      ID          `json:"productId"`
	Product        *ProductRef `json:"product,omitempty"`
	MonthlyQuota   int         `json:"monthlyQuota"`
	RemainingQuota int         `json:"remainingQuota"`
}

// UsedQuota is the part of the monthly allotment already purchased.
func (s SubsidyEntitlement) UsedQuota() int {
	return s.MonthlyQuota - s.RemainingQuota
}

type Recipient struct {
	ID             ID                   `json:"id"`
	NationalID     string               `json:"nationalId"`
	Name           string               `json:"name"`
	Address        string               `json:"address"`
	District       string               `json:"district"`
	Classification Classification       `json:"classification"`
	Status         RecipientStatus      `json:"status"`
	Income         decimal.Decimal      `json:"income"`
	FamilyMembers  int                  `json:"familyMembers"`
	LandArea       float64              `json:"landArea"`
	HomeOwnership  string               `json:"homeOwnership"`
	Subsidies      []SubsidyEntitlement `json:"subsidies"`
	MerchantID     *ID                  `json:"merchantId,omitempty"`
	Merchant       *MerchantRef         `json:"merchant,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

func (r Recipient) EntityID() ID {
	return r.ID
}

// FieldValue exposes searchable and filterable fields by their JSON names.
func (r Recipient) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return string(r.ID), r.ID != ""
	case "nationalId":
		return r.NationalID, r.NationalID != ""
	case "name":
		return r.Name, r.Name != ""
	case "address":
		return r.Address, r.Address != ""
	case "district":
		return r.District, r.District != ""
	case "classification":
		return string(r.Classification), r.Classification != ""
	case "status":
		return string(r.Status), r.Status != ""
	case "homeOwnership":
		return r.HomeOwnership, r.HomeOwnership != ""
	case "familyMembers":
		return strconv.Itoa(r.FamilyMembers), true
	case "merchantId":
		if r.MerchantID == nil {
			return "", false
		}
		return string(*r.MerchantID), true
	case "merchant.name":
		if r.Merchant == nil {
			return "", false
		}
		return r.Merchant.Name, true
	}
	return "", false
}

func (r Recipient) TimeValue(field string) (time.Time, bool) {
	switch field {
	case "createdAt":
		return r.CreatedAt, !r.CreatedAt.IsZero()
	case "updatedAt":
		return r.UpdatedAt, !r.UpdatedAt.IsZero()
	}
	return time.Time{}, false
}

// CreateRecipientRequest represents the request body for creating a recipient
type CreateRecipientRequest struct {
	NationalID     string               `json:"nationalId"`
	Name           string               `json:"name"`
	Address        string               `json:"address"`
	District       string               `json:"district"`
	Classification Classification       `json:"classification,omitempty"`
	Status         RecipientStatus      `json:"status,omitempty"`
	Income         decimal.Decimal      `json:"income"`
	FamilyMembers  int                  `json:"familyMembers"`
	LandArea       float64              `json:"landArea"`
	HomeOwnership  string               `json:"homeOwnership,omitempty"`
	Subsidies      []SubsidyEntitlement `json:"subsidies,omitempty"`
	MerchantID     *ID                  `json:"merchantId,omitempty"`
}

func (req *CreateRecipientRequest) Validate() error {
	if req.Name == "" || req.NationalID == "" {
		return validationError("name and nationalId are required")
	}
	if len(req.NationalID) != 16 {
		return validationError("nationalId must be 16 digits")
	}
	if _, err := strconv.ParseUint(req.NationalID, 10, 64); err != nil {
		return validationError("nationalId must be 16 digits")
	}
	if req.FamilyMembers < 0 || req.LandArea < 0 || req.Income.IsNegative() {
		return validationError("income, familyMembers and landArea must not be negative")
	}
	return validateSubsidies(req.Subsidies)
}

// UpdateRecipientRequest is a partial update; nil fields are left unchanged upstream.
type UpdateRecipientRequest struct {
	Name           *string              `json:"name,omitempty"`
	Address        *string              `json:"address,omitempty"`
	District       *string              `json:"district,omitempty"`
	Classification *Classification      `json:"classification,omitempty"`
	Status         *RecipientStatus     `json:"status,omitempty"`
	Income         *decimal.Decimal     `json:"income,omitempty"`
	FamilyMembers  *int                 `json:"familyMembers,omitempty"`
	LandArea       *float64             `json:"landArea,omitempty"`
	HomeOwnership  *string              `json:"homeOwnership,omitempty"`
	Subsidies      []SubsidyEntitlement `json:"subsidies,omitempty"`
	MerchantID     *ID                  `json:"merchantId,omitempty"`
}

func (req *UpdateRecipientRequest) Validate() error {
	if req.Name != nil && *req.Name == "" {
		return validationError("name cannot be empty")
	}
	if req.Status != nil {
		switch *req.Status {
		case RecipientActive, RecipientInactive, RecipientSuspended:
		default:
			return validationError("unknown status %q", *req.Status)
		}
	}
	if req.FamilyMembers != nil && *req.FamilyMembers < 0 {
		return validationError("familyMembers must not be negative")
	}
	return validateSubsidies(req.Subsidies)
}

func validateSubsidies(subsidies []SubsidyEntitlement) error {
	for _, s := range subsidies {
		if s.ProductID == "" {
			return validationError("subsidy productId is required")
		}
		if s.MonthlyQuota < 0 || s.RemainingQuota < 0 {
			return validationError("subsidy quotas must not be negative")
		}
	}
	return nil
}
