package services

import (
	"context"

	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/store"
)

// RecipientSearchFields are matched by the free-text search box.
var RecipientSearchFields = []string{"name", "nationalId", "address"}

type RecipientQuery struct {
	Search         string
	Status         string
	District       string
	Classification string
}

// Filters builds the filter chain for q.
func (q RecipientQuery) Filters() []filter.Filter[models.Recipient] {
	return []filter.Filter[models.Recipient]{
		filter.Search[models.Recipient](q.Search, RecipientSearchFields...),
		filter.Exact[models.Recipient]("status", orWildcard(q.Status), filter.DefaultWildcard),
		filter.Exact[models.Recipient]("district", orWildcard(q.District), filter.DefaultWildcard),
		filter.Exact[models.Recipient]("classification", orWildcard(q.Classification), filter.DefaultWildcard),
	}
}

type RecipientService struct {
	Store *store.RecipientStore
}

func NewRecipientService(st *store.RecipientStore) *RecipientService {
	return &RecipientService{Store: st}
}

func (s *RecipientService) ListRecipients(ctx context.Context, q RecipientQuery) ([]RecipientView, error) {
	items, err := loadItems(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	return mapViews(filter.Compose(items, q.Filters()...), NewRecipientView), nil
}

func (s *RecipientService) GetRecipient(ctx context.Context, id models.ID) (RecipientView, error) {
	r, err := s.Store.FetchOne(ctx, id)
	if err != nil {
		return RecipientView{}, err
	}
	return NewRecipientView(r), nil
}

func (s *RecipientService) CreateRecipient(ctx context.Context, req *models.CreateRecipientRequest) (RecipientView, error) {
	if err := req.Validate(); err != nil {
		return RecipientView{}, err
	}
	r, err := s.Store.Create(ctx, req)
	if err != nil {
		return RecipientView{}, err
	}
	return NewRecipientView(r), nil
}

func (s *RecipientService) UpdateRecipient(ctx context.Context, id models.ID, req *models.UpdateRecipientRequest) (RecipientView, error) {
	if err := req.Validate(); err != nil {
		return RecipientView{}, err
	}
	r, err := s.Store.Update(ctx, id, req)
	if err != nil {
		return RecipientView{}, err
	}
	return NewRecipientView(r), nil
}

func (s *RecipientService) DeleteRecipient(ctx context.Context, id models.ID) error {
	return s.Store.Remove(ctx, id)
}

func (s *RecipientService) Statistics(ctx context.Context, refresh bool) (models.RecipientStatistics, error) {
	return loadStatistics(ctx, s.Store, refresh)
}
