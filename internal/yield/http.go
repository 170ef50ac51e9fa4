package yield

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/infra/rpc/provider"
)

// Response is the envelope served by /api/yields.
type Response struct {
	Success   bool                   `json:"success"`
	Data      []domain.YieldProtocol `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// HTTPSource reads protocols from a remote endpoint serving Response.
type HTTPSource struct {
	provider provider.Provider
}

// NewHTTPSource creates a source that GETs url.
func NewHTTPSource(url string, timeout time.Duration, requestsPerSecond int) *HTTPSource {
	return &HTTPSource{provider: provider.NewHTTPProvider("yields", url, timeout, requestsPerSecond)}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.YieldProtocol, error) {
	var resp Response
	if _, err := s.provider.Execute(ctx, provider.Operation{Result: &resp}); err != nil {
		return nil, fmt.Errorf("fetch yields: %w", err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "unsuccessful response"
		}
		return nil, fmt.Errorf("fetch yields: %w", errors.New(msg))
	}
	return resp.Data, nil
}

// Close releases the underlying transport.
func (s *HTTPSource) Close() error {
	return s.provider.Close()
}
