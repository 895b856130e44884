// Package session keeps one catalog service per visitor session, so a
// session loads each data document once and later sessions start fresh.
package session

import (
	"context"
	"sync"
	"time"

	"oli3d-catalog/internal/catalog"
	"oli3d-catalog/internal/metrics"

	gocache "github.com/patrickmn/go-cache"
)

// Factory builds the service backing a new session.
type Factory func() catalog.Service

type Registry struct {
	mu      sync.Mutex
	store   *gocache.Cache
	ttl     time.Duration
	factory Factory
	metrics *metrics.Catalog
}

// NewRegistry expires idle sessions after ttl. Every Get slides the expiry.
func NewRegistry(ttl time.Duration, factory Factory, m *metrics.Catalog) *Registry {
	if m == nil {
		m = &metrics.Catalog{}
	}
	return &Registry{
		store:   gocache.New(ttl, 2*ttl),
		ttl:     ttl,
		factory: factory,
		metrics: m,
	}
}

// Get returns the service for id, creating it on first use. The second return
// value reports whether the session was newly created.
func (r *Registry) Get(id string) (catalog.Service, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.store.Get(id); ok {
		svc := v.(catalog.Service)
		r.store.Set(id, svc, r.ttl)
		return svc, false
	}

	svc := r.factory()
	r.store.Set(id, svc, r.ttl)
	r.metrics.Sessions.Inc()
	return svc, true
}

func (r *Registry) Delete(id string) {
	r.store.Delete(id)
}

// Active is the number of live sessions, including expired ones not yet
// swept.
func (r *Registry) Active() int {
	return r.store.ItemCount()
}

// TTL is the idle lifetime of a session.
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

type ctxKey struct{}

func WithService(ctx context.Context, svc catalog.Service) context.Context {
	return context.WithValue(ctx, ctxKey{}, svc)
}

func ServiceFrom(ctx context.Context) (catalog.Service, bool) {
	svc, ok := ctx.Value(ctxKey{}).(catalog.Service)
	return svc, ok
}
