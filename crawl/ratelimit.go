package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/sitepdf"
	"golang.org/x/time/rate"
)

var _ sitepdf.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each host using token buckets with a
// burst of one. A crawl stays on one origin, so in practice a single bucket
// paces the whole run.
type DomainLimiter struct {
	mu    sync.Mutex
	limit rate.Limit
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a DomainLimiter allowing rps requests per second
// to each host. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &DomainLimiter{
		limit: limit,
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled first.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[host] = l
	}
	return l
}
