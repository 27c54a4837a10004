package limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"neurobiomark/internal/domain"
)

// staleAfter is how long an idle visitor is kept before cleanup drops it.
const staleAfter = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory is a per-key token bucket limiter held in process memory.
type Memory struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

var _ domain.Limiter = (*Memory)(nil)

// NewMemory creates a limiter that refills rps tokens per second up to burst.
func NewMemory(rps float64, burst int) *Memory {
	if burst < 1 {
		burst = 1
	}
	return &Memory{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

// Cleanup drops visitors idle for longer than staleAfter.
func (m *Memory) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for key, v := range m.visitors {
		if now.Sub(v.lastSeen) > staleAfter {
			delete(m.visitors, key)
		}
	}
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (m *Memory) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visitors)
}
