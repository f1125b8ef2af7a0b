package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kozaktomas/photo-archive/internal/search"
)

// ErrNotInitialized is returned by the getters before a backend registered.
var ErrNotInitialized = errors.New("storage backend not initialized: DATABASE_URL is required")

var (
	backendMu sync.RWMutex
	backend   Backend
	catalog   search.Catalog
)

// RegisterBackend makes b the active storage backend. Slug and photo date
// lookups go through a cache with the given TTL unless ttl is zero.
// This is called by the postgres, mariadb and mock packages to avoid import
// cycles.
func RegisterBackend(b Backend, ttl time.Duration) {
	backendMu.Lock()
	defer backendMu.Unlock()
	backend = b
	catalog = b
	if b != nil && ttl > 0 {
		catalog = NewCachedCatalog(b, ttl)
	}
}

// IsInitialized returns whether a backend has been registered.
func IsInitialized() bool {
	backendMu.RLock()
	defer backendMu.RUnlock()
	return backend != nil
}

func active() (Backend, error) {
	backendMu.RLock()
	defer backendMu.RUnlock()
	if backend == nil {
		return nil, ErrNotInitialized
	}
	return backend, nil
}

// GetCatalog returns the facet and photo date lookups of the active backend.
func GetCatalog(ctx context.Context) (search.Catalog, error) {
	backendMu.RLock()
	defer backendMu.RUnlock()
	if catalog == nil {
		return nil, ErrNotInitialized
	}
	return catalog, nil
}

// GetCollection returns the photo source of the active backend.
func GetCollection(ctx context.Context) (search.Collection, error) {
	return active()
}

// GetCompleter returns the autocomplete source of the active backend.
func GetCompleter(ctx context.Context) (Completer, error) {
	return active()
}

// GetFacetWriter returns the facet writer of the active backend.
func GetFacetWriter(ctx context.Context) (FacetWriter, error) {
	return active()
}
