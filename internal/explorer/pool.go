package explorer

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Klingon-tech/tfwallet/internal/metrics"
)

// pool picks explorer URLs, skipping those that recently failed.
type pool struct {
	mu          sync.Mutex
	urls        []string
	unavailable map[string]struct{}
	interval    time.Duration
	nextReset   time.Time
	now         func() time.Time
	rng         *rand.Rand
	metrics     *metrics.Explorer
}

func newPool(urls []string, interval time.Duration, now func() time.Time, rng *rand.Rand, m *metrics.Explorer) *pool {
	return &pool{
		urls:        urls,
		unavailable: make(map[string]struct{}),
		interval:    interval,
		nextReset:   now().Add(interval),
		now:         now,
		rng:         rng,
		metrics:     m,
	}
}

// pick returns a uniformly random URL outside the unavailable set. The set
// is cleared every interval, and as soon as it covers every URL.
func (p *pool) pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now := p.now(); !now.Before(p.nextReset) {
		p.clear()
		p.nextReset = now.Add(p.interval)
	}
	if len(p.unavailable) >= len(p.urls) {
		p.clear()
	}
	candidates := make([]string, 0, len(p.urls))
	for _, u := range p.urls {
		if _, down := p.unavailable[u]; !down {
			candidates = append(candidates, u)
		}
	}
	return candidates[p.rng.IntN(len(candidates))]
}

// markUnavailable excludes url from selection until the next reset and
// returns the size of the unavailable set.
func (p *pool) markUnavailable(url string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unavailable[url] = struct{}{}
	p.metrics.ObserveFailover(len(p.unavailable))
	return len(p.unavailable)
}

func (p *pool) clear() {
	if len(p.unavailable) == 0 {
		return
	}
	clear(p.unavailable)
	p.metrics.ObserveReset()
}
