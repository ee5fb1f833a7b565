package services

import (
	"context"
	"fmt"
	"strings"

	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/store"
)

// TransactionSearchFields are matched by the free-text search box.
var TransactionSearchFields = []string{"number", "recipient.name", "merchant.name"}

type TransactionQuery struct {
	Search string
	Status string
	Window string
}

func (q TransactionQuery) Filters() []filter.Filter[models.Transaction] {
	return []filter.Filter[models.Transaction]{
		filter.Search[models.Transaction](q.Search, TransactionSearchFields...),
		filter.Exact[models.Transaction]("status", orWildcard(q.Status), filter.DefaultWildcard),
		filter.DateWindow[models.Transaction]("date", filter.ParseWindow(q.Window)),
	}
}

type TransactionService struct {
	Store *store.TransactionStore
}

func NewTransactionService(st *store.TransactionStore) *TransactionService {
	return &TransactionService{Store: st}
}

func (s *TransactionService) ListTransactions(ctx context.Context, q TransactionQuery) ([]TransactionView, error) {
	items, err := loadItems(ctx, s.Store.Store)
	if err != nil {
		return nil, err
	}
	return mapViews(filter.Compose(items, q.Filters()...), NewTransactionView), nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id models.ID) (TransactionView, error) {
	t, err := s.Store.Store.FetchOne(ctx, id)
	if err != nil {
		return TransactionView{}, err
	}
	return NewTransactionView(t), nil
}

func (s *TransactionService) CreateTransaction(ctx context.Context, req *models.CreateTransactionRequest) (TransactionView, error) {
	if err := req.Validate(); err != nil {
		return TransactionView{}, err
	}
	t, err := s.Store.Create(ctx, req)
	if err != nil {
		return TransactionView{}, err
	}
	return NewTransactionView(t), nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, id models.ID, req *models.UpdateTransactionRequest) (TransactionView, error) {
	if err := req.Validate(); err != nil {
		return TransactionView{}, err
	}
	t, err := s.Store.Update(ctx, id, req)
	if err != nil {
		return TransactionView{}, err
	}
	return NewTransactionView(t), nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id models.ID) error {
	return s.Store.Remove(ctx, id)
}

var errNumberRequired = fmt.Errorf("%w: transaction number is required", models.ErrValidation)

func (s *TransactionService) ApproveTransaction(ctx context.Context, number string) (TransactionView, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return TransactionView{}, errNumberRequired
	}
	t, err := s.Store.Approve(ctx, number)
	if err != nil {
		return TransactionView{}, err
	}
	return NewTransactionView(t), nil
}

func (s *TransactionService) RejectTransaction(ctx context.Context, number string, req *models.RejectTransactionRequest) (TransactionView, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return TransactionView{}, errNumberRequired
	}
	var notes string
	if req != nil {
		notes = strings.TrimSpace(req.Notes)
	}
	t, err := s.Store.Reject(ctx, number, notes)
	if err != nil {
		return TransactionView{}, err
	}
	return NewTransactionView(t), nil
}

func (s *TransactionService) Statistics(ctx context.Context, refresh bool) (models.TransactionStatistics, error) {
	return loadStatistics(ctx, s.Store.Store, refresh)
}
