package models

import "github.com/shopspring/decimal"

// RecipientStatistics is the aggregate returned by /recipients/statistics.
type RecipientStatistics struct {
	Total            int            `json:"total"`
	Active           int            `json:"active"`
	Inactive         int            `json:"inactive"`
	Suspended        int            `json:"suspended"`
	ByClassification map[string]int `json:"byClassification,omitempty"`
	ByDistrict       map[string]int `json:"byDistrict,omitempty"`
}

// MerchantStatistics is the aggregate returned by /merchants/statistics.
type MerchantStatistics struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	Inactive   int            `json:"inactive"`
	TotalStock int            `json:"totalStock"`
	ByDistrict map[string]int `json:"byDistrict,omitempty"`
}

// ProductStatistics is the aggregate returned by /products/statistics.
type ProductStatistics struct {
	Total        int            `json:"total"`
	ByType       map[string]int `json:"byType,omitempty"`
	TotalSoldQty int            `json:"totalSoldQuantity"`
}

// TransactionStatistics is the aggregate returned by /transactions/statistics.
type TransactionStatistics struct {
	Total       int             `json:"total"`
	Completed   int             `json:"completed"`
	Pending     int             `json:"pending"`
	Failed      int             `json:"failed"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Today       int             `json:"today"`
	Yesterday   int             `json:"yesterday"`
}
