package health

import (
	"context"
	"sync"
	"time"

	"github.com/vietddude/stacksyield/internal/infra/rpc/provider"
)

// Check reports the health of one component.
type Check func(ctx context.Context) ComponentHealth

// Monitor aggregates health status from registered components.
type Monitor struct {
	checks     map[string]Check
	interval   time.Duration
	lastCheck  time.Time
	lastReport map[string]ComponentHealth
	mu         sync.Mutex
}

// NewMonitor creates a monitor that re-runs checks at most once per interval.
func NewMonitor(interval time.Duration) *Monitor {
	return &Monitor{
		checks:     make(map[string]Check),
		interval:   interval,
		lastReport: make(map[string]ComponentHealth),
	}
}

// Register adds a named check.
func (m *Monitor) Register(name string, check Check) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[name] = check
	m.lastCheck = time.Time{}
}

// CheckHealth runs all checks, or returns the previous report when it is
// younger than the interval.
func (m *Monitor) CheckHealth(ctx context.Context) HealthReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Rate limit checks to avoid spamming remote APIs
	if time.Since(m.lastCheck) < m.interval && len(m.lastReport) > 0 {
		return HealthReport{SystemStatus: Aggregate(m.lastReport), Components: m.lastReport}
	}

	report := make(map[string]ComponentHealth, len(m.checks))
	for name, check := range m.checks {
		c := check(ctx)
		c.Name = name
		report[name] = c
	}

	m.lastCheck = time.Now()
	m.lastReport = report
	return HealthReport{SystemStatus: Aggregate(report), Components: report}
}

// ProviderCheck reports on an HTTP provider from its own accounting.
func ProviderCheck(status func() provider.HealthStatus) Check {
	return func(ctx context.Context) ComponentHealth {
		h := status()
		c := ComponentHealth{
			Status:        StatusHealthy,
			ErrorRate:     h.ErrorRate,
			LastSuccessAt: h.LastSuccessAt,
		}
		switch {
		case !h.Available:
			c.Status = StatusCritical
		case h.ErrorRate > 0.2:
			c.Status = StatusDegraded
		}
		return c
	}
}

// BlockNumberer is satisfied by ethclient.Client.
type BlockNumberer interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// RPCCheck probes a JSON-RPC node for its latest block.
func RPCCheck(client BlockNumberer) Check {
	return func(ctx context.Context) ComponentHealth {
		if _, err := client.BlockNumber(ctx); err != nil {
			return ComponentHealth{Status: StatusCritical, Error: err.Error(), ErrorRate: 1}
		}
		return ComponentHealth{Status: StatusHealthy, LastSuccessAt: time.Now()}
	}
}

// FreshnessCheck degrades when updatedAt is zero or older than maxAge.
func FreshnessCheck(updatedAt func() time.Time, maxAge time.Duration) Check {
	return func(ctx context.Context) ComponentHealth {
		t := updatedAt()
		c := ComponentHealth{Status: StatusHealthy, LastSuccessAt: t}
		if t.IsZero() || time.Since(t) > maxAge {
			c.Status = StatusDegraded
			c.Error = "serving cached or default data"
		}
		return c
	}
}
