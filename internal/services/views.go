package services

import (
	"github.com/shopspring/decimal"

	"subsidy-dashboard/internal/derive"
	"subsidy-dashboard/internal/display"
	"subsidy-dashboard/internal/models"
)

// SubsidyView is an entitlement with its quota severity.
type SubsidyView struct {
	models.SubsidyEntitlement
	UsedQuota           int             `json:"usedQuota"`
	RemainingPercentage float64         `json:"remainingPercentage"`
	QuotaStatus         derive.Severity `json:"quotaStatus"`
}

// RecipientView is a recipient decorated for display.
type RecipientView struct {
	models.Recipient
	ClassificationDisplay display.ClassificationDisplay `json:"classificationDisplay"`
	StatusDisplay         display.StatusDisplay         `json:"statusDisplay"`
	Subsidies             []SubsidyView                 `json:"subsidies"`
}

func NewRecipientView(r models.Recipient) RecipientView {
	subsidies := make([]SubsidyView, 0, len(r.Subsidies))
	for _, s := range r.Subsidies {
		used := s.UsedQuota()
		subsidies = append(subsidies, SubsidyView{
			SubsidyEntitlement:  s,
			UsedQuota:           used,
			RemainingPercentage: derive.QuotaRemainingPercentage(float64(s.RemainingQuota), float64(s.MonthlyQuota)),
			QuotaStatus:         derive.QuotaSeverity(float64(used), float64(s.MonthlyQuota)),
		})
	}
	return RecipientView{
		Recipient:             r,
		ClassificationDisplay: display.ResolveClassification(string(r.Classification)),
		StatusDisplay:         display.ResolveRecipientStatus(string(r.Status)),
		Subsidies:             subsidies,
	}
}

// HoldingView is one product stock line with its severity against the
// merchant's capacity.
type HoldingView struct {
	models.StockHolding
	StockStatus derive.Severity `json:"stockStatus"`
}

// MerchantView is a merchant decorated for display.
type MerchantView struct {
	models.Merchant
	ActiveDisplay         display.StatusDisplay `json:"activeDisplay"`
	TotalStock            int                   `json:"totalStock"`
	UtilizationPercentage float64               `json:"utilizationPercentage"`
	StockStatus           derive.Severity       `json:"stockStatus"`
	Products              []HoldingView         `json:"products"`
}

func NewMerchantView(m models.Merchant) MerchantView {
	capacity := float64(m.MaxCapacity)
	total := m.TotalStock()
	holdings := make([]HoldingView, 0, len(m.Products))
	for _, h := range m.Products {
		holdings = append(holdings, HoldingView{
			StockHolding: h,
			StockStatus:  derive.StockSeverity(float64(h.Stock), capacity),
		})
	}
	return MerchantView{
		Merchant:              m,
		ActiveDisplay:         display.ResolveActive(m.IsActive),
		TotalStock:            total,
		UtilizationPercentage: derive.UtilizationPercentage(float64(total), capacity),
		StockStatus:           derive.StockSeverity(float64(total), capacity),
		Products:              holdings,
	}
}

// ProductView adds the per-unit subsidy.
type ProductView struct {
	models.Product
	SubsidyPerUnit decimal.Decimal `json:"subsidyPerUnit"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{Product: p, SubsidyPerUnit: p.SubsidyPerUnit()}
}

// TransactionView is a transaction decorated for display.
type TransactionView struct {
	models.Transaction
	StatusDisplay display.StatusDisplay `json:"statusDisplay"`
}

func NewTransactionView(t models.Transaction) TransactionView {
	return TransactionView{
		Transaction:   t,
		StatusDisplay: display.ResolveTransactionStatus(string(t.Status)),
	}
}

func mapViews[T, V any](items []T, fn func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
