package services

import (
	"context"

	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/store"
)

var ProductSearchFields = []string{"name", "unit"}

type ProductQuery struct {
	Search string
	Type   string
}

func (q ProductQuery) Filters() []filter.Filter[models.Product] {
	return []filter.Filter[models.Product]{
		filter.Search[models.Product](q.Search, ProductSearchFields...),
		filter.Exact[models.Product]("type", orWildcard(q.Type), filter.DefaultWildcard),
	}
}

type ProductService struct {
	Store *store.ProductStore
}

func NewProductService(st *store.ProductStore) *ProductService {
	return &ProductService{Store: st}
}

func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) ([]ProductView, error) {
	items, err := loadItems(ctx, s.Store)
	if err != nil {
		return nil, err
	}
	return mapViews(filter.Compose(items, q.Filters()...), NewProductView), nil
}

func (s *ProductService) GetProduct(ctx context.Context, id models.ID) (ProductView, error) {
	p, err := s.Store.FetchOne(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	return NewProductView(p), nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (ProductView, error) {
	if err := req.Validate(); err != nil {
		return ProductView{}, err
	}
	p, err := s.Store.Create(ctx, req)
	if err != nil {
		return ProductView{}, err
	}
	return NewProductView(p), nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id models.ID, req *models.UpdateProductRequest) (ProductView, error) {
	if err := req.Validate(); err != nil {
		return ProductView{}, err
	}
	p, err := s.Store.Update(ctx, id, req)
	if err != nil {
		return ProductView{}, err
	}
	return NewProductView(p), nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id models.ID) error {
	return s.Store.Remove(ctx, id)
}

func (s *ProductService) Statistics(ctx context.Context, refresh bool) (models.ProductStatistics, error) {
	return loadStatistics(ctx, s.Store, refresh)
}
