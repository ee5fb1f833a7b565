package models

// ProductRef is the embedded product summary the API attaches to nested records.
type ProductRef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// RecipientRef is the embedded recipient summary on transactions.
type RecipientRef struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	NationalID string `json:"nationalId,omitempty"`
}

// MerchantRef is the embedded merchant summary on recipients and transactions.
type MerchantRef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
