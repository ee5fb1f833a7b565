package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the settlement state of a subsidized purchase.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is one subsidized purchase by a recipient at a merchant.
// TotalAmount is computed upstream from the product's base and subsidy prices.
type Transaction struct {
	ID          ID                `json:"id"`
	Number      string            `json:"number"`
	Date        time.Time         `json:"date"`
	RecipientID ID                `json:"recipientId"`
	Recipient   *RecipientRef     `json:"recipient,omitempty"`
	MerchantID  ID                `json:"merchantId"`
	Merchant    *MerchantRef      `json:"merchant,omitempty"`
	ProductID   ID                `json:"productId"`
	Product     *ProductRef       `json:"product,omitempty"`
	Quantity    int               `json:"quantity"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	Status      TransactionStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
}

func (t Transaction) EntityID() ID {
	return t.ID
}

func (t Transaction) FieldValue(field string) (string, bool) {
	switch field {
	case "id":
		return string(t.ID), t.ID != ""
	case "number":
		return t.Number, t.Number != ""
	case "status":
		return string(t.Status), t.Status != ""
	case "recipientId":
		return string(t.RecipientID), t.RecipientID != ""
	case "merchantId":
		return string(t.MerchantID), t.MerchantID != ""
	case "productId":
		return string(t.ProductID), t.ProductID != ""
	case "quantity":
		return strconv.Itoa(t.Quantity), true
	case "recipient.name":
		if t.Recipient == nil {
			return "", false
		}
		return t.Recipient.Name, true
	case "recipient.nationalId":
		if t.Recipient == nil {
			return "", false
		}
		return t.Recipient.NationalID, true
	case "merchant.name":
		if t.Merchant == nil {
			return "", false
		}
		return t.Merchant.Name, true
	case "product.name":
		if t.Product == nil {
			return "", false
		}
		return t.Product.Name, true
	}
	return "", false
}

func (t Transaction) TimeValue(field string) (time.Time, bool) {
	if field == "date" {
		return t.Date, !t.Date.IsZero()
	}
	return time.Time{}, false
}

// CreateTransactionRequest represents the request body for recording a purchase
type CreateTransactionRequest struct {
	RecipientID ID     `json:"recipientId"`
	MerchantID  ID     `json:"merchantId"`
	ProductID   ID     `json:"productId"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

func (req *CreateTransactionRequest) Validate() error {
	if req.RecipientID == "" || req.MerchantID == "" || req.ProductID == "" {
		return validationError("recipientId, merchantId and productId are required")
	}
	if req.Quantity <= 0 {
		return validationError("quantity must be positive")
	}
	return nil
}

// UpdateTransactionRequest is a partial update; nil fields are left unchanged upstream.
type UpdateTransactionRequest struct {
	Quantity *int               `json:"quantity,omitempty"`
	Status   *TransactionStatus `json:"status,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
}

func (req *UpdateTransactionRequest) Validate() error {
	if req.Quantity != nil && *req.Quantity <= 0 {
		return validationError("quantity must be positive")
	}
	if req.Status != nil {
		switch *req.Status {
		case TransactionCompleted, TransactionPending, TransactionFailed:
		default:
			return validationError("unknown status %q", *req.Status)
		}
	}
	return nil
}

// RejectTransactionRequest carries the optional reason sent with a rejection
type RejectTransactionRequest struct {
	Notes string `json:"notes,omitempty"`
}
