package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ok(context.Context) error { return nil }

func TestCheckBasicHealthy(t *testing.T) {
	h := NewHealthChecker(PingFunc(ok), PingFunc(ok), nil)
	status := h.CheckBasic(context.Background())

	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, StatusHealthy, status.Redis.Status)
	assert.Equal(t, StatusDisabled, status.Database.Status)
}

func TestCheckBasicUpstreamDown(t *testing.T) {
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })
	status := NewHealthChecker(down, nil, nil).CheckBasic(context.Background())

	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Equal(t, "connection refused", status.Upstream.Error)
}

func TestOptionalComponentFailureKeepsReady(t *testing.T) {
	down := PingFunc(func(context.Context) error { return errors.New("no redis") })
	status := NewHealthChecker(PingFunc(ok), down, nil).CheckBasic(context.Background())

	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, StatusUnhealthy, status.Redis.Status)
}
