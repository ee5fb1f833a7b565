package services

import (
	"context"
	"strings"

	"subsidy-dashboard/internal/api"
	"subsidy-dashboard/internal/filter"
	"subsidy-dashboard/internal/models"
	"subsidy-dashboard/internal/store"
)

// loadItems fetches the collection upstream with the caller's token. The
// store keeps the result, but reads never serve it to another caller.
func loadItems[T models.Identified, S any](ctx context.Context, st *store.Store[T, S]) ([]T, error) {
	return st.FetchAll(ctx, api.ListParams{})
}

// loadStatistics reads the caller's shared aggregate unless a refresh is requested.
func loadStatistics[T models.Identified, S any](ctx context.Context, st *store.Store[T, S], refresh bool) (S, error) {
	if refresh {
		return st.RefreshStatistics(ctx)
	}
	return st.FetchStatistics(ctx)
}

// orWildcard treats an absent query parameter as "all".
func orWildcard(v string) string {
	if strings.TrimSpace(v) == "" {
		return filter.DefaultWildcard
	}
	return v
}
