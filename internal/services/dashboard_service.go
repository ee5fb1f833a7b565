package services

import (
	"context"
	"time"

	"subsidy-dashboard/internal/derive"
	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/timeutil"
)

// DashboardSummary is the landing page aggregate.
type DashboardSummary struct {
	GeneratedAt           time.Time      `json:"generatedAt"`
	TransactionsToday     int            `json:"transactionsToday"`
	TransactionsYesterday int            `json:"transactionsYesterday"`
	ChangePercent         float64        `json:"changePercent"`
	PendingTransactions   int            `json:"pendingTransactions"`
	Classifications       map[string]int `json:"classifications"`
	LowStockMerchants     []MerchantView `json:"lowStockMerchants"`
}

type DashboardService struct {
	Recipients   *RecipientService
	Merchants    *MerchantService
	Transactions *TransactionService
	Now          func() time.Time
}

func NewDashboardService(recipients *RecipientService, merchants *MerchantService, transactions *TransactionService) *DashboardService {
	return &DashboardService{
		Recipients:   recipients,
		Merchants:    merchants,
		Transactions: transactions,
		Now:          timeutil.Now,
	}
}

// Summary computes day-over-day transaction counts from freshly fetched
// transactions, in the dashboard time zone.
func (s *DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	now := s.Now()

	transactions, err := loadItems(ctx, s.Transactions.Store.Store)
	if err != nil {
		return DashboardSummary{}, err
	}
	recipients, err := loadItems(ctx, s.Recipients.Store)
	if err != nil {
		return DashboardSummary{}, err
	}
	lowStock, err := s.Merchants.LowStockMerchants(ctx)
	if err != nil {
		return DashboardSummary{}, err
	}

	today := len(filter.ByDateWindowAt(transactions, "date", filter.WindowToday, now))
	yesterday := len(filter.ByDateWindowAt(transactions, "date", filter.WindowToday, now.AddDate(0, 0, -1)))
	pending := len(filter.ByExactField(transactions, "status", string(models.TransactionPending), filter.DefaultWildcard))

	classifications := map[string]int{
		string(models.ClassificationWellOff): 0,
		string(models.ClassificationMiddle):  0,
		string(models.ClassificationPoor):    0,
	}
	for _, r := range recipients {
		if r.Classification != "" {
			classifications[string(r.Classification)]++
		}
	}

	return DashboardSummary{
		GeneratedAt:           now,
		TransactionsToday:     today,
		TransactionsYesterday: yesterday,
		ChangePercent:         derive.DayOverDayChangePercent(float64(today), float64(yesterday)),
		PendingTransactions:   pending,
		Classifications:       classifications,
		LowStockMerchants:     lowStock,
	}, nil
}
