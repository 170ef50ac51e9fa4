// Package provider implements the HTTP transport shared by the Stacks API
// client and the remote yield source.
//
// This package contains:
//   - Operation: a transport-agnostic description of a REST call
//   - Provider interface: core abstraction for remote endpoints
//   - HTTPProvider: JSON over HTTP implementation with client-side rate limiting
package provider

import (
	"context"
	"time"
)

// Operation represents a REST call to execute.
type Operation struct {
	// Path is appended to the provider endpoint (e.g., "extended/v1/address/SP.../balances").
	Path string

	// Method is the HTTP method, GET when empty.
	Method string

	// Body is JSON encoded when non-nil.
	Body any

	// Result receives the decoded JSON response. When nil the response is
	// decoded into map[string]any / []any and returned.
	Result any
}

// Provider defines the core interface for a remote endpoint.
type Provider interface {
	// GetName returns provider identifier (e.g., "hiro", "yields")
	GetName() string

	// GetHealth returns current health metrics
	GetHealth() HealthStatus

	// Execute performs the operation with monitoring and error handling
	Execute(ctx context.Context, op Operation) (any, error)

	// Close cleans up resources
	Close() error
}

// HealthStatus represents the health state of a provider.
type HealthStatus struct {
	Available     bool          `json:"available"`
	Latency       time.Duration `json:"latency"`
	ErrorRate     float64       `json:"error_rate"`
	LastSuccessAt time.Time     `json:"last_success_at"`
	LastFailureAt time.Time     `json:"last_failure_at"`
}
