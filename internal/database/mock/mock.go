// Package mock provides an in-memory storage backend for tests and demos.
package mock

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gosimple/slug"
	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var _ database.Backend = (*MockBackend)(nil)

// MockBackend is an in-memory implementation of database.Backend.
type MockBackend struct {
	mu     sync.RWMutex
	photos []search.Candidate
	facets map[gallery.Kind][]gallery.Facet
	nextID int32

	// Error injection
	FacetError    error
	PhotoError    error
	PhotosError   error
	CompleteError error
	EnsureError   error
}

// NewMockBackend creates an empty backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		facets: make(map[gallery.Kind][]gallery.Facet),
		nextID: 1,
	}
}

// AddPhoto stores a photo. Facet IDs are those returned by AddTag, AddPerson
// and AddPlace.
func (m *MockBackend) AddPhoto(c search.Candidate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos = append(m.photos, c)
}

func (m *MockBackend) add(kind gallery.Kind, name string) gallery.Facet {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := slug.Make(name)
	for _, f := range m.facets[kind] {
		if f.FacetSlug() == s {
			return f
		}
	}
	f, _ := gallery.NewFacet(kind, m.nextID, name, s)
	m.nextID++
	m.facets[kind] = append(m.facets[kind], f)
	return f
}

// AddTag stores a tag, deriving the slug from name.
func (m *MockBackend) AddTag(name string) gallery.Tag {
	return m.add(gallery.KindTag, name).(gallery.Tag)
}

// AddPerson stores a person, deriving the slug from name.
func (m *MockBackend) AddPerson(name string) gallery.Person {
	return m.add(gallery.KindPerson, name).(gallery.Person)
}

// AddPlace stores a place, deriving the slug from name.
func (m *MockBackend) AddPlace(name string) gallery.Place {
	return m.add(gallery.KindPlace, name).(gallery.Place)
}

func (m *MockBackend) bySlug(kind gallery.Kind, s string) (gallery.Facet, error) {
	if m.FacetError != nil {
		return nil, m.FacetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.facets[kind] {
		if f.FacetSlug() == s {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%s %q: %w", kind, s, gallery.ErrFacetNotFound)
}

// TagBySlug returns the tag with the given slug.
func (m *MockBackend) TagBySlug(ctx context.Context, s string) (gallery.Tag, error) {
	f, err := m.bySlug(gallery.KindTag, s)
	if err != nil {
		return gallery.Tag{}, err
	}
	return f.(gallery.Tag), nil
}

// PersonBySlug returns the person with the given slug.
func (m *MockBackend) PersonBySlug(ctx context.Context, s string) (gallery.Person, error) {
	f, err := m.bySlug(gallery.KindPerson, s)
	if err != nil {
		return gallery.Person{}, err
	}
	return f.(gallery.Person), nil
}

// PlaceBySlug returns the place with the given slug.
func (m *MockBackend) PlaceBySlug(ctx context.Context, s string) (gallery.Place, error) {
	f, err := m.bySlug(gallery.KindPlace, s)
	if err != nil {
		return gallery.Place{}, err
	}
	return f.(gallery.Place), nil
}

// PhotoDate returns the date of a stored photo.
func (m *MockBackend) PhotoDate(ctx context.Context, id int32) (*time.Time, error) {
	if m.PhotoError != nil {
		return nil, m.PhotoError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.photos {
		if c.Photo.ID == id {
			return c.Photo.Date, nil
		}
	}
	return nil, fmt.Errorf("photo %d: %w", id, gallery.ErrPhotoNotFound)
}

// Photos returns the stored photos matching pred in insertion order.
func (m *MockBackend) Photos(ctx context.Context, scope gallery.Scope, pred search.Predicate) ([]gallery.Photo, error) {
	if m.PhotosError != nil {
		return nil, m.PhotosError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []gallery.Photo
	for _, c := range m.photos {
		if pred.Match(scope, c) {
			out = append(out, c.Photo)
		}
	}
	return out, nil
}

// Complete matches term against facet names ignoring case and accents.
func (m *MockBackend) Complete(ctx context.Context, scope gallery.Scope, kind gallery.Kind, term string, limit int) ([]gallery.Suggestion, error) {
	if m.CompleteError != nil {
		return nil, m.CompleteError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := Fold(term)
	var matches []gallery.Facet
	for _, f := range m.facets[kind] {
		if !strings.Contains(Fold(f.FacetName()), needle) {
			continue
		}
		if !scope.Authorized && !m.onPublicPhoto(kind, f.FacetID()) {
			continue
		}
		matches = append(matches, f)
	}
	slices.SortStableFunc(matches, func(a, b gallery.Facet) int {
		return strings.Compare(a.FacetName(), b.FacetName())
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]gallery.Suggestion, 0, len(matches))
	for _, f := range matches {
		out = append(out, gallery.SuggestionFor(f))
	}
	return out, nil
}

func (m *MockBackend) onPublicPhoto(kind gallery.Kind, id int32) bool {
	for _, c := range m.photos {
		if c.Public && c.Has(kind, id) {
			return true
		}
	}
	return false
}

// EnsureFacet returns the facet whose slug matches name, adding it if needed.
func (m *MockBackend) EnsureFacet(ctx context.Context, kind gallery.Kind, name string) (gallery.Facet, error) {
	if m.EnsureError != nil {
		return nil, m.EnsureError
	}
	if slug.Make(name) == "" {
		return nil, fmt.Errorf("%s %q: %w", kind, name, gallery.ErrInvalidName)
	}
	return m.add(kind, name), nil
}

// Fold lowercases s and strips diacritics, so "Plzeň" matches "plzen".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
