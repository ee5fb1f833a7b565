package health

import (
	"context"
	"time"
)

// Pinger is anything whose reachability can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthChecker struct {
	upstream Pinger
	redis    Pinger
	db       Pinger
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Upstream ComponentHealth `json:"upstream"`
	Redis    ComponentHealth `json:"redis"`
	Database ComponentHealth `json:"database"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// NewHealthChecker builds a checker. redis and db are optional; a nil
// component reports "disabled" and does not affect readiness.
func NewHealthChecker(upstream, redis, db Pinger) *HealthChecker {
	return &HealthChecker{upstream: upstream, redis: redis, db: db}
}

// CheckBasic reports unhealthy only when the upstream API is unreachable.
// Redis and the audit database are optional and degrade gracefully.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Upstream: check(ctx, h.upstream),
		Redis:    check(ctx, h.redis),
		Database: check(ctx, h.db),
	}

	status.Status = StatusHealthy
	if status.Upstream.Status != StatusHealthy {
		status.Status = StatusUnhealthy
	}
	return status
}

func check(ctx context.Context, p Pinger) ComponentHealth {
	if p == nil {
		return ComponentHealth{Status: StatusDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{
			Status:       StatusUnhealthy,
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ComponentHealth{
		Status:       StatusHealthy,
		ResponseTime: responseTime,
	}
}
