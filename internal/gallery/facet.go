// Package gallery holds the model types shared by the search, timeline and
// storage packages.
package gallery

import "fmt"

// Kind identifies a facet type. The value doubles as the query parameter key
// used for filters of that kind.
type Kind byte

const (
	KindTag    Kind = 't'
	KindPerson Kind = 'p'
	KindPlace  Kind = 'l'
)

// Kinds lists all facet kinds in autocomplete order.
var Kinds = []Kind{KindTag, KindPerson, KindPlace}

// Key returns the query parameter key for the kind.
func (k Kind) Key() string {
	return string(rune(k))
}

func (k Kind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindPerson:
		return "person"
	case KindPlace:
		return "place"
	}
	return "unknown"
}

// ParseKind parses a kind from its name ("tag") or key ("t").
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if s == k.String() || s == k.Key() {
			return k, true
		}
	}
	return 0, false
}

// Facet is a sluggable classification entity attachable to photos.
type Facet interface {
	FacetID() int32
	FacetName() string
	FacetSlug() string
	Kind() Kind
}

// Tag is a free-form keyword.
type Tag struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (t Tag) FacetID() int32    { return t.ID }
func (t Tag) FacetName() string { return t.Name }
func (t Tag) FacetSlug() string { return t.Slug }
func (t Tag) Kind() Kind        { return KindTag }

// Person is someone depicted in a photo.
type Person struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (p Person) FacetID() int32    { return p.ID }
func (p Person) FacetName() string { return p.Name }
func (p Person) FacetSlug() string { return p.Slug }
func (p Person) Kind() Kind        { return KindPerson }

// Place is a geographic location, usually resolved from a photo position.
type Place struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (p Place) FacetID() int32    { return p.ID }
func (p Place) FacetName() string { return p.Name }
func (p Place) FacetSlug() string { return p.Slug }
func (p Place) Kind() Kind        { return KindPlace }

// Suggestion is an autocomplete hit.
type Suggestion struct {
	Kind string `json:"k"`
	Name string `json:"t"`
	Slug string `json:"s"`
}

// SuggestionFor converts a facet into an autocomplete hit.
func SuggestionFor(f Facet) Suggestion {
	return Suggestion{Kind: f.Kind().Key(), Name: f.FacetName(), Slug: f.FacetSlug()}
}

// NewFacet builds the facet of the given kind.
func NewFacet(kind Kind, id int32, name, slug string) (Facet, error) {
	switch kind {
	case KindTag:
		return Tag{ID: id, Name: name, Slug: slug}, nil
	case KindPerson:
		return Person{ID: id, Name: name, Slug: slug}, nil
	case KindPlace:
		return Place{ID: id, Name: name, Slug: slug}, nil
	}
	return nil, fmt.Errorf("unknown facet kind %q", kind.Key())
}
