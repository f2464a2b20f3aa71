package types

import "time"

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// LoginRequest is the body of POST /api/session.
type LoginRequest struct {
	// example: Gw@2025-Demo!
	Secret string `json:"secret" example:"Gw@2025-Demo!"`
}

// SessionResponse reports whether the caller's session is unlocked.
type SessionResponse struct {
	// example: true
	Unlocked bool `json:"unlocked" example:"true"`
	// Session token; only returned by POST /api/session.
	Token string `json:"token,omitempty"`
	// Expiry of the session in unix seconds.
	// example: 1700000000
	ExpiresAt int64 `json:"expires_at,omitempty" example:"1700000000"`
}

// Point is one sample of a dashboard series.
type Point struct {
	// example: 14:00
	Time  string  `json:"time" example:"14:00"`
	Value float64 `json:"value"`
}

// Series is a named time series with its display unit.
type Series struct {
	// example: call_volume
	Name string `json:"name" example:"call_volume"`
	// example: ms
	Unit   string  `json:"unit,omitempty" example:"ms"`
	Points []Point `json:"points"`
}

// SummaryStat is one headline figure on the dashboard.
type SummaryStat struct {
	// example: calls
	Label string `json:"label" example:"calls"`
	// Raw value.
	Value float64 `json:"value"`
	// Display form, e.g. 2.1M or 0.66%.
	// example: 2.1M
	Display string `json:"display" example:"2.1M"`
}

// PerfRow summarises the distribution of one performance metric.
type PerfRow struct {
	// example: TTFT (ms)
	Metric string  `json:"metric" example:"TTFT (ms)"`
	Avg    float64 `json:"avg"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
}

// DashboardResponse is returned by GET /api/observability.
type DashboardResponse struct {
	// example: 全部组织
	Org string `json:"org" example:"全部组织"`
	// example: 全部模型服务
	Service     string        `json:"service" example:"全部模型服务"`
	From        time.Time     `json:"from"`
	To          time.Time     `json:"to"`
	Summary     []SummaryStat `json:"summary"`
	Series      []Series      `json:"series"`
	Performance []PerfRow     `json:"performance"`
}
