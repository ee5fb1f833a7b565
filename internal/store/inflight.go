package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"subsidy-dashboard/internal/api"
	"subsidy-dashboard/internal/metrics"
)

// tracker records in-flight operations per key. Mutations are exclusive per
// key (op plus target id, or payload digest for creates); reads get a unique
// key so they never block each other.
type tracker struct {
	name string
	mu   sync.Mutex
	ops  map[string]string
}

func newTracker(name string) *tracker {
	return &tracker{name: name, ops: make(map[string]string)}
}

func opKey(op, target string) string {
	return op + ":" + target
}

// begin registers key. For exclusive keys it fails when key is already registered.
func (t *tracker) begin(key string, exclusive bool) (release func(), ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := uuid.NewString()
	if exclusive {
		if _, busy := t.ops[key]; busy {
			return nil, false
		}
	} else {
		key = key + "#" + id
	}
	t.ops[key] = id
	metrics.StoreInFlight.WithLabelValues(t.name).Set(float64(len(t.ops)))

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.ops, key)
			metrics.StoreInFlight.WithLabelValues(t.name).Set(float64(len(t.ops)))
		})
	}, true
}

func (t *tracker) active(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ops[key]
	return ok
}

func (t *tracker) any() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ops) > 0
}

// payloadDigest identifies a create request by content so a double submit of
// the same form is refused while the first one is pending.
func payloadDigest(data any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return uuid.NewString()
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:12])
}

// principal is a digest of the bearer token on ctx, or "anonymous".
func principal(ctx context.Context) string {
	token, ok := api.TokenFrom(ctx)
	if !ok {
		return "anonymous"
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
