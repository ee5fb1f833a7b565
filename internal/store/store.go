// Package store keeps one in-memory cache per entity family, filled from and
// written through the upstream REST API. The cache changes only after the
// upstream call succeeds; a failed call leaves it exactly as it was.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"sync"
	"time"

	"subsidy-dashboard/internal/api"
	"subsidy-dashboard/internal/metrics"
	"subsidy-dashboard/internal/models"
)

// ErrOperationInFlight is returned when an identical mutation is still pending.
var ErrOperationInFlight = errors.New("an identical operation is already in progress")

// ErrInvalidResponse is wrapped when a successful mutation returns no entity.
var ErrInvalidResponse = errors.New("invalid response from server")

// DefaultPageSize is the list limit used when none is configured.
const DefaultPageSize = 100

// Operation names, also used as in-flight key prefixes.
const (
	OpFetchAll   = "fetchAll"
	OpFetchOne   = "fetchOne"
	OpCreate     = "create"
	OpUpdate     = "update"
	OpRemove     = "remove"
	OpStatistics = "fetchStatistics"
)

// Messages are the operator-facing fallbacks used when the server gives no reason.
type Messages struct {
	FetchAll   string
	FetchOne   string
	Create     string
	Update     string
	Remove     string
	Statistics string
}

// Options tune a store. Zero values use the defaults.
type Options struct {
	PageSize  int
	Shared    SharedCache
	SharedTTL time.Duration
}

// Store caches one entity family of type T with statistics of type S.
type Store[T models.Identified, S any] struct {
	backend  Backend
	name     string
	resource string
	messages Messages
	opts     Options
	inflight *tracker

	mu         sync.RWMutex
	items      []T
	loaded     bool
	stats      *S
	fetchSeq   uint64
	appliedSeq uint64
}

func New[T models.Identified, S any](backend Backend, name, resource string, messages Messages, opts Options) *Store[T, S] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.SharedTTL <= 0 {
		opts.SharedTTL = time.Minute
	}
	return &Store[T, S]{
		backend:  backend,
		name:     name,
		resource: resource,
		messages: messages,
		opts:     opts,
		inflight: newTracker(name),
	}
}

// Name is the store's family name.
func (s *Store[T, S]) Name() string {
	return s.name
}

// Items returns a copy of the cached collection. The copy is shallow: nested
// slices such as subsidies or stock holdings are shared with the cache and
// must be treated as read-only.
func (s *Store[T, S]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Loaded reports whether FetchAll has succeeded at least once.
func (s *Store[T, S]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Find returns the cached entity with id.
func (s *Store[T, S]) Find(id models.ID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Statistics returns the last fetched aggregate.
func (s *Store[T, S]) Statistics() (S, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		var zero S
		return zero, false
	}
	return *s.stats, true
}

// Loading reports whether any operation on this store is waiting on the upstream.
func (s *Store[T, S]) Loading() bool {
	return s.inflight.any()
}

// InFlight reports whether the mutation op on target is pending.
func (s *Store[T, S]) InFlight(op, target string) bool {
	return s.inflight.active(opKey(op, target))
}

// FetchAll replaces the cache with the upstream list. Responses to fetches
// that started before the last applied one are discarded.
func (s *Store[T, S]) FetchAll(ctx context.Context, params api.ListParams) ([]T, error) {
	release, _ := s.inflight.begin(OpFetchAll, false)
	defer release()

	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	if params.Limit <= 0 {
		params.Limit = s.opts.PageSize
	}

	var items []T
	if err := s.backend.Get(ctx, s.resource, params.Query(), &items); err != nil {
		return nil, s.fail(OpFetchAll, err, s.messages.FetchAll)
	}
	if err := ctx.Err(); err != nil {
		return nil, s.fail(OpFetchAll, err, s.messages.FetchAll)
	}
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	if seq > s.appliedSeq {
		s.items = items
		s.loaded = true
		s.appliedSeq = seq
	}
	s.mu.Unlock()
	s.observeSize()

	out := make([]T, len(items))
	copy(out, items)
	return out, nil
}

// FetchOne loads a single entity without touching the cache.
func (s *Store[T, S]) FetchOne(ctx context.Context, id models.ID) (T, error) {
	release, _ := s.inflight.begin(opKey(OpFetchOne, string(id)), false)
	defer release()

	var item T
	if err := s.backend.Get(ctx, s.entityPath(id), nil, &item); err != nil {
		var zero T
		return zero, s.fail(OpFetchOne, err, s.messages.FetchOne)
	}
	return item, nil
}

// Create posts data and appends the created entity to the cache.
func (s *Store[T, S]) Create(ctx context.Context, data any) (T, error) {
	var zero T
	release, ok := s.inflight.begin(opKey(OpCreate, payloadDigest(data)), true)
	if !ok {
		return zero, s.rejectDuplicate(OpCreate)
	}
	defer release()

	var created T
	if err := s.backend.Post(ctx, s.resource, data, &created); err != nil {
		return zero, s.fail(OpCreate, err, s.messages.Create)
	}
	if err := ctx.Err(); err != nil {
		return zero, s.fail(OpCreate, err, s.messages.Create)
	}
	if created.EntityID() == "" {
		return zero, s.fail(OpCreate, ErrInvalidResponse, s.messages.Create)
	}

	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()
	s.afterMutation(ctx)
	return created, nil
}

// Update patches id and replaces the matching cache entry.
func (s *Store[T, S]) Update(ctx context.Context, id models.ID, data any) (T, error) {
	return s.Action(ctx, OpUpdate, string(id), s.messages.Update, func(ctx context.Context) (T, error) {
		var updated T
		err := s.backend.Patch(ctx, s.entityPath(id), data, &updated)
		return updated, err
	})
}

// Remove deletes id upstream and drops it from the cache.
func (s *Store[T, S]) Remove(ctx context.Context, id models.ID) error {
	release, ok := s.inflight.begin(opKey(OpRemove, string(id)), true)
	if !ok {
		return s.rejectDuplicate(OpRemove)
	}
	defer release()

	if err := s.backend.Delete(ctx, s.entityPath(id)); err != nil {
		return s.fail(OpRemove, err, s.messages.Remove)
	}
	if err := ctx.Err(); err != nil {
		return s.fail(OpRemove, err, s.messages.Remove)
	}

	s.mu.Lock()
	kept := s.items[:0:0]
	for _, item := range s.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.afterMutation(ctx)
	return nil
}

// Action runs an exclusive mutation keyed by op and target whose upstream
// response is an updated entity, then replaces the cached entry with the same id.
func (s *Store[T, S]) Action(ctx context.Context, op, target, fallback string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	release, ok := s.inflight.begin(opKey(op, target), true)
	if !ok {
		return zero, s.rejectDuplicate(op)
	}
	defer release()

	updated, err := call(ctx)
	if err != nil {
		return zero, s.fail(op, err, fallback)
	}
	if err := ctx.Err(); err != nil {
		return zero, s.fail(op, err, fallback)
	}
	if updated.EntityID() == "" {
		return zero, s.fail(op, ErrInvalidResponse, fallback)
	}

	s.mu.Lock()
	for i, item := range s.items {
		if item.EntityID() == updated.EntityID() {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.afterMutation(ctx)
	return updated, nil
}

// FetchStatistics loads the aggregate endpoint, consulting the shared cache
// entry of the calling principal first.
func (s *Store[T, S]) FetchStatistics(ctx context.Context) (S, error) {
	return s.fetchStatistics(ctx, true)
}

// RefreshStatistics loads the aggregate endpoint without reading the shared cache.
func (s *Store[T, S]) RefreshStatistics(ctx context.Context) (S, error) {
	return s.fetchStatistics(ctx, false)
}

func (s *Store[T, S]) fetchStatistics(ctx context.Context, readShared bool) (S, error) {
	release, _ := s.inflight.begin(OpStatistics, false)
	defer release()

	key := s.statsKey(ctx)
	if readShared && s.opts.Shared != nil {
		if data, ok := s.opts.Shared.Get(ctx, key); ok {
			var cached S
			if err := json.Unmarshal(data, &cached); err == nil {
				s.setStats(&cached)
				return cached, nil
			}
		}
	}

	var stats S
	if err := s.backend.Get(ctx, s.resource+"/statistics", nil, &stats); err != nil {
		var zero S
		return zero, s.fail(OpStatistics, err, s.messages.Statistics)
	}
	if err := ctx.Err(); err != nil {
		var zero S
		return zero, s.fail(OpStatistics, err, s.messages.Statistics)
	}
	s.setStats(&stats)

	if s.opts.Shared != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.opts.Shared.Set(ctx, key, data, s.opts.SharedTTL)
		}
	}
	return stats, nil
}

func (s *Store[T, S]) setStats(stats *S) {
	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
}

func (s *Store[T, S]) statsPrefix() string {
	return "stats:" + s.name + ":"
}

// statsKey scopes shared statistics to the bearer token on ctx, so one
// caller never reads an aggregate the upstream computed for another.
func (s *Store[T, S]) statsKey(ctx context.Context) string {
	return s.statsPrefix() + principal(ctx)
}

func (s *Store[T, S]) entityPath(id models.ID) string {
	return s.resource + "/" + url.PathEscape(string(id))
}

// afterMutation drops every statistics copy of this family so the next read refetches.
func (s *Store[T, S]) afterMutation(ctx context.Context) {
	s.observeSize()
	s.setStats(nil)
	if s.opts.Shared != nil {
		s.opts.Shared.DeletePrefix(context.WithoutCancel(ctx), s.statsPrefix())
	}
}

func (s *Store[T, S]) observeSize() {
	s.mu.RLock()
	n := len(s.items)
	s.mu.RUnlock()
	metrics.StoreEntries.WithLabelValues(s.name).Set(float64(n))
}

func (s *Store[T, S]) rejectDuplicate(op string) error {
	metrics.StoreRejectedTotal.WithLabelValues(s.name, op).Inc()
	log.Printf("[Store] %s: %s refused, identical request still in flight", s.name, op)
	return ErrOperationInFlight
}

func (s *Store[T, S]) fail(op string, err error, fallback string) error {
	normalized := api.Normalize(s.name+"."+op, err, fallback)
	log.Printf("[Store] %s: %v", s.name, normalized)
	return normalized
}
