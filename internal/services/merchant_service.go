package services

import (
	"context"

	"subsidy-dashboard/internal/derive"
	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/mapview"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/store"
)

var MerchantSearchFields = []string{"name", "ownerName", "address"}

type MerchantQuery struct {
	Search   string
	Status   string // active, inactive or all
	District string
}

func (q MerchantQuery) Filters() []filter.Filter[models.Merchant] {
	var active filter.Filter[models.Merchant]
	switch q.Status {
	case "active":
		active = filter.Exact[models.Merchant]("isActive", "true", filter.DefaultWildcard)
	case "inactive":
		active = filter.Exact[models.Merchant]("isActive", "false", filter.DefaultWildcard)
	}
	return []filter.Filter[models.Merchant]{
		filter.Search[models.Merchant](q.Search, MerchantSearchFields...),
		active,
		filter.Exact[models.Merchant]("district", orWildcard(q.District), filter.DefaultWildcard),
	}
}

type MerchantService struct {
	Store *store.MerchantStore
	Map   mapview.Provider
}

// NewMerchantService renders map markers on provider; a nil provider gets a JSON layer.
func NewMerchantService(st *store.MerchantStore, provider mapview.Provider) *MerchantService {
	if provider == nil {
		provider = mapview.NewLayer()
	}
	return &MerchantService{Store: st, Map: provider}
}

func (s *MerchantService) ListMerchants(ctx context.Context, q MerchantQuery) ([]MerchantView, error) {
	items, err := loadItems(ctx, s.Store.Store)
	if err != nil {
		return nil, err
	}
	return mapViews(filter.Compose(items, q.Filters()...), NewMerchantView), nil
}

func (s *MerchantService) GetMerchant(ctx context.Context, id models.ID) (MerchantView, error) {
	m, err := s.Store.Store.FetchOne(ctx, id)
	if err != nil {
		return MerchantView{}, err
	}
	return NewMerchantView(m), nil
}

// MerchantProducts returns the merchant's stock lines with severity against its capacity.
func (s *MerchantService) MerchantProducts(ctx context.Context, id models.ID) ([]HoldingView, error) {
	m, err := s.Store.FetchOne(ctx, id)
	if err != nil {
		return nil, err
	}
	holdings, err := s.Store.FetchProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	capacity := float64(m.MaxCapacity)
	return mapViews(holdings, func(h models.StockHolding) HoldingView {
		return HoldingView{StockHolding: h, StockStatus: derive.StockSeverity(float64(h.Stock), capacity)}
	}), nil
}

func (s *MerchantService) CreateMerchant(ctx context.Context, req *models.CreateMerchantRequest) (MerchantView, error) {
	if err := req.Validate(); err != nil {
		return MerchantView{}, err
	}
	m, err := s.Store.Create(ctx, req)
	if err != nil {
		return MerchantView{}, err
	}
	return NewMerchantView(m), nil
}

func (s *MerchantService) UpdateMerchant(ctx context.Context, id models.ID, req *models.UpdateMerchantRequest) (MerchantView, error) {
	if err := req.Validate(); err != nil {
		return MerchantView{}, err
	}
	m, err := s.Store.Update(ctx, id, req)
	if err != nil {
		return MerchantView{}, err
	}
	return NewMerchantView(m), nil
}

func (s *MerchantService) DeleteMerchant(ctx context.Context, id models.ID) error {
	return s.Store.Remove(ctx, id)
}

func (s *MerchantService) Statistics(ctx context.Context, refresh bool) (models.MerchantStatistics, error) {
	return loadStatistics(ctx, s.Store.Store, refresh)
}

// MapMarkers renders the filtered merchants on the map provider.
func (s *MerchantService) MapMarkers(ctx context.Context, q MerchantQuery) ([]mapview.Marker, error) {
	items, err := loadItems(ctx, s.Store.Store)
	if err != nil {
		return nil, err
	}
	merchants := filter.Compose(items, q.Filters()...)
	if err := mapview.Show(s.Map, merchants); err != nil {
		return nil, err
	}
	return mapview.Markers(merchants), nil
}

// LowStockMerchants are merchants whose total stock falls in the low tier.
func (s *MerchantService) LowStockMerchants(ctx context.Context) ([]MerchantView, error) {
	items, err := loadItems(ctx, s.Store.Store)
	if err != nil {
		return nil, err
	}
	low := filter.Compose(items, filter.Where(func(m models.Merchant) bool {
		return derive.StockSeverity(float64(m.TotalStock()), float64(m.MaxCapacity)).Tier == derive.TierLow
	}))
	return mapViews(low, NewMerchantView), nil
}
