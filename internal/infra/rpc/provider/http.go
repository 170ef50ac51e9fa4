package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/ratelimit"
)

// HTTPProvider implements Provider for JSON REST APIs over HTTP.
type HTTPProvider struct {
	name       string
	endpoint   string
	httpClient *http.Client
	limiter    ratelimit.Limiter

	mu           sync.RWMutex
	health       HealthStatus
	totalLatency time.Duration
	successCount int
	failureCount int
	requestCount int
}

// NewHTTPProvider creates a new HTTP provider. A requestsPerSecond of zero
// or less disables rate limiting.
func NewHTTPProvider(name, endpoint string, timeout time.Duration, requestsPerSecond int) *HTTPProvider {
	limiter := ratelimit.NewUnlimited()
	if requestsPerSecond > 0 {
		limiter = ratelimit.New(requestsPerSecond)
	}

	return &HTTPProvider{
		name:     name,
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: limiter,
		health: HealthStatus{
			Available:     true,
			LastSuccessAt: time.Now(),
		},
	}
}

// Execute performs a single REST call.
func (p *HTTPProvider) Execute(ctx context.Context, op Operation) (any, error) {
	p.limiter.Take()
	start := time.Now()

	method := op.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if op.Body != nil {
		jsonData, err := json.Marshal(op.Body)
		if err != nil {
			p.recordFailure()
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	url := p.endpoint
	if op.Path != "" {
		url = p.endpoint + "/" + strings.TrimLeft(op.Path, "/")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		p.recordFailure()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.recordFailure()
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	// Rate limit detection
	if resp.StatusCode == http.StatusTooManyRequests {
		p.recordFailure()
		return nil, fmt.Errorf("rate limited (429), retry after: %s", resp.Header.Get("Retry-After"))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		p.recordFailure()
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		p.recordFailure()
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if op.Result != nil {
		if err := json.Unmarshal(respBody, op.Result); err != nil {
			p.recordFailure()
			return nil, fmt.Errorf("parse response: %w", err)
		}
		p.recordSuccess(time.Since(start))
		return op.Result, nil
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		p.recordFailure()
		return nil, fmt.Errorf("parse response: %w", err)
	}

	p.recordSuccess(time.Since(start))
	return result, nil
}

// GetName returns the provider's name.
func (p *HTTPProvider) GetName() string {
	return p.name
}

// GetHealth returns the provider's health status.
func (p *HTTPProvider) GetHealth() HealthStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health
}

// Close cleans up resources.
func (p *HTTPProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}

func (p *HTTPProvider) recordSuccess(latency time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.successCount++
	p.requestCount++
	p.totalLatency += latency
	p.health.LastSuccessAt = time.Now()
	p.health.Available = true

	if p.requestCount > 0 {
		p.health.ErrorRate = float64(p.failureCount) / float64(p.requestCount)
	}
	if p.successCount > 0 {
		p.health.Latency = p.totalLatency / time.Duration(p.successCount)
	}
}

func (p *HTTPProvider) recordFailure() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.failureCount++
	p.requestCount++
	p.health.LastFailureAt = time.Now()

	if p.requestCount > 0 {
		p.health.ErrorRate = float64(p.failureCount) / float64(p.requestCount)
	}

	if p.health.ErrorRate > 0.5 {
		p.health.Available = false
	}
}
