// Package search resolves gallery search parameters into a typed query and
// composes the matching, time ordered photo collection.
package search

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kozaktomas/photo-archive/internal/gallery"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Catalog looks up the entities referenced by search parameters.
type Catalog interface {
	TagBySlug(ctx context.Context, slug string) (gallery.Tag, error)
	PersonBySlug(ctx context.Context, slug string) (gallery.Person, error)
	PlaceBySlug(ctx context.Context, slug string) (gallery.Place, error)
	// PhotoDate returns the date of a photo, which may be nil for photos
	// without one. It returns gallery.ErrPhotoNotFound for unknown ids.
	PhotoDate(ctx context.Context, id int32) (*time.Time, error)
}

// Filter narrows a collection to photos that have (Include) or lack the
// facet Item.
type Filter[F gallery.Facet] struct {
	Include bool `json:"include"`
	Item    F    `json:"item"`
}

// Query is a fully resolved search.
type Query struct {
	Tags   []Filter[gallery.Tag]    `json:"tags,omitempty"`
	People []Filter[gallery.Person] `json:"people,omitempty"`
	Places []Filter[gallery.Place]  `json:"places,omitempty"`

	// Since and Until are inclusive bounds on the photo date.
	Since *time.Time `json:"since,omitempty"`
	Until *time.Time `json:"until,omitempty"`

	// HasPosition requires photos with (true) or without (false) a stored
	// position. Nil means no constraint.
	HasPosition *bool `json:"has_position,omitempty"`

	// Text is the raw "q" parameter, kept for echoing in the UI.
	Text string `json:"text,omitempty"`
}

// Resolve builds a Query from query parameters.
//
// Date bounds are collected over all params first. Everything else is then
// applied in input order, so "from" and "to" always override since_date and
// until_date. Unknown facet slugs and bad "pos" values are passed to reporter
// and otherwise ignored. A malformed or unknown "from"/"to" photo id fails the
// whole resolution.
func Resolve(ctx context.Context, params []Param, catalog Catalog, reporter Reporter) (*Query, error) {
	if reporter == nil {
		reporter = nopReporter{}
	}

	var sinceDate, sinceTime, untilDate, untilTime string
	for _, p := range params {
		switch p.Key {
		case "since_date":
			sinceDate = p.Value
		case "since_time":
			sinceTime = p.Value
		case "until_date":
			untilDate = p.Value
		case "until_time":
			untilTime = p.Value
		}
	}

	q := &Query{
		Since: combineDateTime(sinceDate, sinceTime, 0, 0, 0, 0),
		Until: combineDateTime(untilDate, untilTime, 23, 59, 59, 999*int(time.Millisecond)),
	}

	for _, p := range params {
		switch p.Key {
		case "q":
			if strings.Contains(p.Value, "!pos") {
				q.HasPosition = boolPtr(false)
			} else if strings.Contains(p.Value, "pos") {
				q.HasPosition = boolPtr(true)
			}
			q.Text = p.Value
		case "t":
			q.Tags = addFilter(ctx, q.Tags, p.Value, catalog.TagBySlug, reporter)
		case "p":
			q.People = addFilter(ctx, q.People, p.Value, catalog.PersonBySlug, reporter)
		case "l":
			q.Places = addFilter(ctx, q.Places, p.Value, catalog.PlaceBySlug, reporter)
		case "pos":
			switch p.Value {
			case "t":
				q.HasPosition = boolPtr(true)
			case "!t":
				q.HasPosition = boolPtr(false)
			case "":
				q.HasPosition = nil
			default:
				reporter.BadValue(p.Key, p.Value)
				q.HasPosition = nil
			}
		case "from":
			date, err := anchorDate(ctx, catalog, p)
			if err != nil {
				return nil, err
			}
			q.Since = date
		case "to":
			date, err := anchorDate(ctx, catalog, p)
			if err != nil {
				return nil, err
			}
			q.Until = date
		}
	}
	return q, nil
}

// addFilter resolves a "slug" or "!slug" value and adds it to filters. A slug
// that is already present keeps its position and takes the new polarity.
func addFilter[F gallery.Facet](
	ctx context.Context,
	filters []Filter[F],
	value string,
	lookup func(context.Context, string) (F, error),
	reporter Reporter,
) []Filter[F] {
	include, slug := true, value
	if rest, ok := strings.CutPrefix(value, "!"); ok {
		include, slug = false, rest
	}

	item, err := lookup(ctx, slug)
	if err != nil {
		var zero F
		reporter.FilterDropped(zero.Kind(), slug, err)
		return filters
	}

	for i := range filters {
		if filters[i].Item.FacetSlug() == item.FacetSlug() {
			filters[i].Include = include
			return filters
		}
	}
	return append(filters, Filter[F]{Include: include, Item: item})
}

func anchorDate(ctx context.Context, catalog Catalog, p Param) (*time.Time, error) {
	// Photo ids are int32, so a larger number is malformed input (400), not
	// an unknown photo (404).
	id, err := strconv.ParseInt(p.Value, 10, 32)
	if err != nil {
		return nil, &ParseError{Key: p.Key, Value: p.Value, Err: err}
	}
	date, err := catalog.PhotoDate(ctx, int32(id))
	if err != nil {
		return nil, err
	}
	return date, nil
}

// combineDateTime joins a YYYY-MM-DD date and an optional HH:MM:SS time. The
// given default time of day is used when the time is missing or malformed.
// A missing or malformed date yields nil.
func combineDateTime(date, clock string, hour, minute, sec, nsec int) *time.Time {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil
	}
	if c, err := time.Parse(timeLayout, clock); err == nil {
		hour, minute, sec, nsec = c.Hour(), c.Minute(), c.Second(), 0
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, sec, nsec, time.UTC)
	return &t
}

// QueryString renders the facet filters and the position flag as a query
// string fragment. Every pair is prefixed by "&" so the result can be
// appended to an existing href. Dates and free text are not included.
func (q *Query) QueryString() string {
	var b strings.Builder
	writeFilters(&b, q.Tags)
	writeFilters(&b, q.Places)
	writeFilters(&b, q.People)
	if q.HasPosition != nil {
		b.WriteString("&pos=")
		if !*q.HasPosition {
			b.WriteByte('!')
		}
		b.WriteByte('t')
	}
	return b.String()
}

func writeFilters[F gallery.Facet](b *strings.Builder, filters []Filter[F]) {
	for _, f := range filters {
		b.WriteByte('&')
		b.WriteString(f.Item.Kind().Key())
		b.WriteByte('=')
		if !f.Include {
			b.WriteByte('!')
		}
		b.WriteString(url.QueryEscape(f.Item.FacetSlug()))
	}
}

// IsEmpty reports whether the query constrains anything.
func (q *Query) IsEmpty() bool {
	return len(q.Tags) == 0 && len(q.People) == 0 && len(q.Places) == 0 &&
		q.Since == nil && q.Until == nil && q.HasPosition == nil
}

func boolPtr(b bool) *bool {
	return &b
}
