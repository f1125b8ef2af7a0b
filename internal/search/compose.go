package search

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/kozaktomas/photo-archive/internal/gallery"
)

// Collection returns the photos matching a predicate, restricted to what
// scope may see.
type Collection interface {
	Photos(ctx context.Context, scope gallery.Scope, pred Predicate) ([]gallery.Photo, error)
}

// Membership requires a photo to have (Include) or lack a facet.
type Membership struct {
	Kind    gallery.Kind
	ID      int32
	Include bool
}

// Predicate is the storage independent form of a Query. All parts are
// conjunctive.
type Predicate struct {
	Since       *time.Time
	Until       *time.Time
	Facets      []Membership
	HasPosition *bool
}

// Predicate converts the query into the conjunction evaluated by a
// Collection.
func (q *Query) Predicate() Predicate {
	pred := Predicate{
		Since:       q.Since,
		Until:       q.Until,
		HasPosition: q.HasPosition,
	}
	pred.Facets = appendMemberships(pred.Facets, q.Tags)
	pred.Facets = appendMemberships(pred.Facets, q.Places)
	pred.Facets = appendMemberships(pred.Facets, q.People)
	return pred
}

func appendMemberships[F gallery.Facet](ms []Membership, filters []Filter[F]) []Membership {
	for _, f := range filters {
		ms = append(ms, Membership{Kind: f.Item.Kind(), ID: f.Item.FacetID(), Include: f.Include})
	}
	return ms
}

// Candidate is everything the in-memory evaluation of a Predicate needs to
// know about a photo.
type Candidate struct {
	Photo       gallery.Photo
	Public      bool
	HasPosition bool
	Facets      map[gallery.Kind][]int32
}

// Has reports whether the candidate is associated with the facet.
func (c Candidate) Has(kind gallery.Kind, id int32) bool {
	return slices.Contains(c.Facets[kind], id)
}

// Match evaluates the predicate against a single photo. Photos without a
// date never satisfy a date bound.
func (p Predicate) Match(scope gallery.Scope, c Candidate) bool {
	if !scope.Authorized && !c.Public {
		return false
	}
	if p.Since != nil && (c.Photo.Date == nil || c.Photo.Date.Before(*p.Since)) {
		return false
	}
	if p.Until != nil && (c.Photo.Date == nil || c.Photo.Date.After(*p.Until)) {
		return false
	}
	for _, m := range p.Facets {
		if c.Has(m.Kind, m.ID) != m.Include {
			return false
		}
	}
	if p.HasPosition != nil && c.HasPosition != *p.HasPosition {
		return false
	}
	return true
}

// Compose fetches the photos matching q from source, newest first.
func Compose(ctx context.Context, source Collection, scope gallery.Scope, q *Query) ([]gallery.Photo, error) {
	photos, err := source.Photos(ctx, scope, q.Predicate())
	if err != nil {
		return nil, fmt.Errorf("loading photos: %w", err)
	}
	SortPhotos(photos)
	return photos, nil
}

// SortPhotos orders photos by date descending. Photos without a date go
// last; equal dates are ordered by ascending id.
func SortPhotos(photos []gallery.Photo) {
	slices.SortStableFunc(photos, comparePhotos)
}

func comparePhotos(a, b gallery.Photo) int {
	switch {
	case a.Date == nil && b.Date == nil:
	case a.Date == nil:
		return 1
	case b.Date == nil:
		return -1
	default:
		if c := b.Date.Compare(*a.Date); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}
