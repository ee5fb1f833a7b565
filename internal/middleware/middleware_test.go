package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-dashboard/internal/api"
	"subsidy-dashboard/internal/auth"
	"subsidy-dashboard/internal/config"
)

func testJWT(secret string) *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.ExpirationHours = 1
	return auth.NewJWTManager(cfg)
}

func TestAuthDisabledForwardsToken(t *testing.T) {
	var forwarded string
	h := NewAuthMiddleware(nil).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded, _ = api.TokenFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/recipients", nil)
	req.Header.Set("Authorization", "Bearer upstream-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "upstream-token", forwarded)
}

func TestAuthEnabledRejectsMissingAndInvalid(t *testing.T) {
	h := NewAuthMiddleware(testJWT("secret")).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipients", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authorization header required"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/recipients", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEnabledPutsClaimsOnContext(t *testing.T) {
	m := testJWT("secret")
	token, err := m.GenerateToken("u-7", "Rina", auth.RoleOperator)
	require.NoError(t, err)

	var userID, role string
	h := NewAuthMiddleware(m).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ = GetUserIDFromContext(r.Context())
		role, _ = GetRoleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-7", userID)
	assert.Equal(t, auth.RoleOperator, role)
}

func TestRequireMutationBlocksViewers(t *testing.T) {
	m := testJWT("secret")
	token, err := m.GenerateToken("u-1", "", auth.RoleViewer)
	require.NoError(t, err)

	mw := NewAuthMiddleware(m)
	h := mw.Authenticate(mw.RequireMutation(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	for method, want := range map[string]int{
		http.MethodGet:    http.StatusNoContent,
		http.MethodDelete: http.StatusForbidden,
	} {
		req := httptest.NewRequest(method, "/api/recipients/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, method)
	}
}

func TestPanicRecovery(t *testing.T) {
	h := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestRequestLoggerAssignsID(t *testing.T) {
	var seen string
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", seen)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:4411"
	assert.Equal(t, "10.0.0.5", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	var route string
	r.HandleFunc("/api/recipients/{id}", func(w http.ResponseWriter, req *http.Request) {
		route = routeTemplate(req)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipients/42", nil))
	assert.Equal(t, "/api/recipients/{id}", route)
}
