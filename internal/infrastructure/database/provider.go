package database

import (
	"context"
	"sync"
)

// Provider owns the process-wide database handle.
//
// The handle is opened and migrated lazily on first Get. Concurrent first
// callers share a single open: the sync.Once guarantees exactly one
// underlying connection ever exists, and every caller observes the same
// (*DB, error) pair. The Provider is
// constructed once at the composition root and injected where needed.
type Provider struct {
	cfg  Config
	once sync.Once
	db   *DB
	err  error
}

// NewProvider creates a Provider for the given configuration.
// No connection is opened until Get is called.
func NewProvider(cfg Config) *Provider {
	return &Provider{cfg: cfg}
}

// Get returns the live database handle, opening and migrating it on first
// call. Subsequent calls return the cached handle (or the cached open
// failure; a failed open is not retried).
func (p *Provider) Get(ctx context.Context) (*DB, error) {
	p.once.Do(func() {
		p.db, p.err = Open(p.cfg)
		if p.err != nil {
			return
		}
		// The one-shot migration must not inherit the first caller's
		// cancellation: a short-lived first context would poison the
		// cached handle for every later caller.
		if err := p.db.Migrate(context.WithoutCancel(ctx)); err != nil {
			p.db.Close() //nolint:errcheck // Best effort cleanup on error path
			p.db = nil
			p.err = err
		}
	})
	return p.db, p.err
}

// Close closes the handle if it was ever opened.
func (p *Provider) Close() error {
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}
