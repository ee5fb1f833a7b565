package store

import (
	"context"
	"net/url"
	"time"
)

// Backend is the REST boundary the stores call. *api.Client implements it.
//
//go:generate mockgen -destination=mocks/mock_backend.go -source=backend.go Backend
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// SharedCache holds statistics payloads shared between dashboard replicas.
// Implementations degrade to misses when unavailable.
type SharedCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	DeletePrefix(ctx context.Context, prefix string)
}
