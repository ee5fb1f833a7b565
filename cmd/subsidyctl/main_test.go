package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-dashboard/internal/auth"
	"subsidy-dashboard/internal/config"
)

type upstreamCall struct {
	method string
	path   string
	auth   string
	body   string
}

func fakeUpstream(t *testing.T) (*httptest.Server, *[]upstreamCall) {
	t.Helper()
	var calls []upstreamCall
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, upstreamCall{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization"), body: string(body)})
	}
	mux.HandleFunc("/recipients", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		io.WriteString(w, `{"data":[
			{"id":1,"name":"Budi","nationalId":"3201","district":"Cibinong","classification":"poor","status":"active",
			 "subsidies":[{"productId":"p1","monthlyQuota":10,"remainingQuota":1}]},
			{"id":2,"name":"Siti","nationalId":"3202","district":"Bogor","classification":"middle","status":"inactive"}
		]}`)
	})
	mux.HandleFunc("/merchants", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		io.WriteString(w, `[
			{"id":"m1","name":"Toko Tani","district":"Cibinong","isActive":true,"maxCapacity":100,"products":[{"productId":"p1","stock":10}]},
			{"id":"m2","name":"Pangkalan Sari","district":"Bogor","isActive":true,"maxCapacity":100,"products":[{"productId":"p1","stock":80}]}
		]`)
	})
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		io.WriteString(w, `[
			{"id":"t1","number":"TRX-001","status":"pending","quantity":3,"totalAmount":"45000","recipient":{"id":"1","name":"Budi"}},
			{"id":"t2","number":"TRX-002","status":"completed","quantity":1,"totalAmount":"9000"}
		]`)
	})
	mux.HandleFunc("/transactions/TRX-001/approve", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		io.WriteString(w, `{"data":{"id":"t1","number":"TRX-001","status":"completed","quantity":3,"totalAmount":"45000"}}`)
	})
	mux.HandleFunc("/transactions/TRX-001/reject", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		io.WriteString(w, `{"data":{"id":"t1","number":"TRX-001","status":"failed","notes":"kuota habis"}}`)
	})
	mux.HandleFunc("/transactions/TRX-404/approve", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Transaksi tidak ditemukan"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("API_BASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", "testdata/missing.yaml"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRecipientsList(t *testing.T) {
	srv, calls := fakeUpstream(t)

	out, err := execute(t, "--api-url", srv.URL, "--token", "abc", "recipients", "list", "--classification", "poor")
	require.NoError(t, err)

	assert.Contains(t, out, "Budi")
	assert.Contains(t, out, "Miskin")
	assert.Contains(t, out, "Hampir Habis (10.0%)")
	assert.NotContains(t, out, "Siti")
	require.Len(t, *calls, 1)
	assert.Equal(t, "Bearer abc", (*calls)[0].auth)
}

func TestRecipientsListJSON(t *testing.T) {
	srv, _ := fakeUpstream(t)

	out, err := execute(t, "--api-url", srv.URL, "recipients", "list", "--search", "siti", "--json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Siti", got[0]["name"])
	assert.Equal(t, "Tidak Aktif", got[0]["statusDisplay"].(map[string]any)["label"])
}

func TestMerchantsListLowStock(t *testing.T) {
	srv, _ := fakeUpstream(t)

	out, err := execute(t, "--api-url", srv.URL, "merchants", "list", "--low-stock")
	require.NoError(t, err)

	assert.Contains(t, out, "Toko Tani")
	assert.Contains(t, out, "Stok Rendah")
	assert.NotContains(t, out, "Pangkalan Sari")
}

func TestTransactionsListByStatus(t *testing.T) {
	srv, _ := fakeUpstream(t)

	out, err := execute(t, "--api-url", srv.URL, "transactions", "list", "--status", "pending")
	require.NoError(t, err)

	assert.Contains(t, out, "TRX-001")
	assert.Contains(t, out, "Rp 45000")
	assert.Contains(t, out, "Menunggu")
	assert.NotContains(t, out, "TRX-002")
}

func TestTransactionsApproveAndReject(t *testing.T) {
	srv, calls := fakeUpstream(t)

	out, err := execute(t, "--api-url", srv.URL, "transactions", "approve", "TRX-001")
	require.NoError(t, err)
	assert.Contains(t, out, "Selesai")

	out, err = execute(t, "--api-url", srv.URL, "transactions", "reject", "TRX-001", "--notes", " kuota habis ")
	require.NoError(t, err)
	assert.Contains(t, out, "Gagal")

	require.Len(t, *calls, 2)
	assert.Equal(t, http.MethodPost, (*calls)[1].method)
	assert.JSONEq(t, `{"notes":"kuota habis"}`, (*calls)[1].body)
}

func TestTransactionsApproveKeepsServerMessage(t *testing.T) {
	srv, _ := fakeUpstream(t)

	_, err := execute(t, "--api-url", srv.URL, "transactions", "approve", "TRX-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaksi tidak ditemukan")
}

func TestMissingAPIURL(t *testing.T) {
	_, err := execute(t, "recipients", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://upstream.test")
	t.Setenv("JWT_SECRET", "s3cret")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", "testdata/missing.yaml", "token", "--user", "u-1", "--role", auth.RoleAdmin})
	require.NoError(t, cmd.Execute())

	cfg := &config.Config{}
	cfg.JWT.Secret = "s3cret"
	claims, err := auth.NewJWTManager(cfg).ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestTokenCommandRejectsUnknownRole(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://upstream.test")
	t.Setenv("JWT_SECRET", "s3cret")
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", "testdata/missing.yaml", "token", "--user", "u-1", "--role", "root"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}
