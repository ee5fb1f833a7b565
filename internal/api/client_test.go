package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/", time.Second)
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", time.Second)
	assert.Error(t, err)

	_, err = NewClient("ftp://example.org", time.Second)
	assert.Error(t, err)

	c, err := NewClient("https://api.example.org/v1/", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.org/v1", c.BaseURL())
}

func TestClient_Get_AcceptsBothEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "wrapped", body: `{"data":[{"id":"1","name":"Budi"}],"meta":{"total":1}}`},
		{name: "bare", body: `[{"id":"1","name":"Budi"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/recipients", r.URL.Path)
				assert.Equal(t, "100", r.URL.Query().Get("limit"))
				w.Write([]byte(tt.body))
			})

			var out []item
			err := c.Get(context.Background(), "/recipients", ListParams{Limit: 100}.Query(), &out)
			require.NoError(t, err)
			assert.Equal(t, []item{{ID: "1", Name: "Budi"}}, out)
		})
	}
}

func TestClient_Get_BareObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"9","name":"Kios"}`))
	})

	var out item
	require.NoError(t, c.Get(context.Background(), "/merchants/9", nil, &out))
	assert.Equal(t, "Kios", out.Name)
}

func TestClient_ForwardsTokenAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Siti", in["name"])
		w.Write([]byte(`{"data":{"id":"3","name":"Siti"}}`))
	})

	ctx := WithToken(context.Background(), "secret-token")
	var out item
	require.NoError(t, c.Patch(ctx, "/recipients/3", map[string]string{"name": "Siti"}, &out))
	assert.Equal(t, item{ID: "3", Name: "Siti"}, out)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "message field", status: 400, body: `{"message":"NIK sudah terdaftar"}`, wantMsg: "NIK sudah terdaftar"},
		{name: "message list", status: 422, body: `{"message":["name is required","nik invalid"]}`, wantMsg: "name is required; nik invalid"},
		{name: "error string", status: 409, body: `{"error":"conflict"}`, wantMsg: "conflict"},
		{name: "nested error", status: 400, body: `{"error":{"message":"stok tidak cukup"}}`, wantMsg: "stok tidak cukup"},
		{name: "nested data", status: 400, body: `{"data":{"message":"kuota habis"}}`, wantMsg: "kuota habis"},
		{name: "html body", status: 502, body: `<html>bad gateway</html>`, wantMsg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := c.Post(context.Background(), "/recipients", map[string]string{}, nil)
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Get(context.Background(), "/products/404", nil, &item{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestClient_Delete_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.Delete(context.Background(), "/merchants/1"))
}

func TestClient_Ping(t *testing.T) {
	ok := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	assert.NoError(t, ok.Ping(context.Background()))

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Error(t, down.Ping(context.Background()))
}

func TestNormalize(t *testing.T) {
	withServerMsg := &Error{Op: "POST /recipients", Status: 400, Message: "NIK sudah terdaftar"}
	n := Normalize("create", withServerMsg, "Gagal menambah penerima")
	assert.Equal(t, "NIK sudah terdaftar", n.Message)
	assert.Equal(t, 400, n.Status)

	withoutMsg := &Error{Op: "POST /recipients", Status: 500, Err: errors.New("boom")}
	n = Normalize("create", withoutMsg, "Gagal menambah penerima")
	assert.Equal(t, "Gagal menambah penerima", n.Message)

	n = Normalize("fetchAll", context.DeadlineExceeded, "Gagal memuat data")
	assert.Equal(t, "Gagal memuat data", n.Message)
	assert.ErrorIs(t, n, context.DeadlineExceeded)
	assert.Equal(t, 0, StatusOf(n))
}
