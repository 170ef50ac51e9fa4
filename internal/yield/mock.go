package yield

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/vietddude/stacksyield/internal/core/domain"
)

// MockSource serves DefaultProtocols with a small random APY variation to
// simulate live data.
type MockSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMockSource creates a mock source. A nil rnd is seeded from the clock.
func NewMockSource(rnd *rand.Rand) *MockSource {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MockSource{rnd: rnd}
}

// Fetch returns the default protocols with APY shifted by up to ±0.25.
func (m *MockSource) Fetch(ctx context.Context) ([]domain.YieldProtocol, error) {
	protocols := DefaultProtocols()

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range protocols {
		protocols[i].APY += (m.rnd.Float64() - 0.5) * 0.5
	}
	return protocols, nil
}
