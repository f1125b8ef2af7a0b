package database

import (
	"context"

	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
)

// Completer suggests facets for a partially typed name.
type Completer interface {
	// Complete returns up to limit facets of kind whose name contains term,
	// ordered by name. Outside the authorized scope only facets attached to
	// a public photo are returned.
	Complete(ctx context.Context, scope gallery.Scope, kind gallery.Kind, term string, limit int) ([]gallery.Suggestion, error)
}

// FacetWriter creates facets.
type FacetWriter interface {
	// EnsureFacet returns the facet of kind whose slug matches name, creating
	// it when missing.
	EnsureFacet(ctx context.Context, kind gallery.Kind, name string) (gallery.Facet, error)
}

// Backend is everything a storage implementation provides.
type Backend interface {
	search.Catalog
	search.Collection
	Completer
	FacetWriter
}
