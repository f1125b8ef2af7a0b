// Package links turns photo lists and their grouping into navigation links.
package links

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
	"github.com/kozaktomas/photo-archive/internal/timeline"
)

// SearchPath is the path of the search view. Links into it carry the
// active filters.
const SearchPath = "/search/"

const titleLayout = "2006-01-02"

// PhotoLink is a link to a single photo or to a range of photos.
type PhotoLink struct {
	Href  string `json:"href"`
	Title string `json:"title"`
	// Label is set for group links only.
	Label string `json:"label,omitempty"`
	// ID is the photo shown as the link thumbnail.
	ID    int32      `json:"id"`
	Count int        `json:"count"`
	First *time.Time `json:"first,omitempty"`
	Last  *time.Time `json:"last,omitempty"`
}

// IsGroup reports whether the link points at more than one photo.
func (l PhotoLink) IsGroup() bool {
	return l.Label != ""
}

// ForPhoto links directly to a single photo.
func ForPhoto(p gallery.Photo) PhotoLink {
	return PhotoLink{
		Href:  fmt.Sprintf("/img/%d", p.ID),
		Title: formatDate(p.Date),
		ID:    p.ID,
		Count: 1,
		First: p.Date,
		Last:  p.Date,
	}
}

// ForGroup links to the date range view spanned by a group of photos,
// ordered newest first, below basePath.
func ForGroup(group []gallery.Photo, basePath string) PhotoLink {
	newest, oldest := group[0], group[len(group)-1]
	return PhotoLink{
		Href:  fmt.Sprintf("%s?from=%d&to=%d", basePath, oldest.ID, newest.ID),
		Title: rangeTitle(oldest.Date, newest.Date),
		Label: english.Plural(len(group), "photo", "photos"),
		ID:    representative(group).ID,
		Count: len(group),
		First: newest.Date,
		Last:  oldest.Date,
	}
}

// Materialize builds the links for a photo list. Without groups every photo
// gets its own link. Links into the search view get the filters of q
// appended.
func Materialize(groups []timeline.Group, photos []gallery.Photo, basePath string, q *search.Query) []PhotoLink {
	var links []PhotoLink
	if groups == nil {
		links = make([]PhotoLink, 0, len(photos))
		for _, p := range photos {
			links = append(links, ForPhoto(p))
		}
	} else {
		links = make([]PhotoLink, 0, len(groups))
		for _, g := range groups {
			links = append(links, ForGroup(g.Photos(photos), basePath))
		}
	}

	if q != nil {
		if addendum := q.QueryString(); addendum != "" {
			for i := range links {
				if strings.HasPrefix(links[i].Href, SearchPath+"?") {
					links[i].Href += addendum
				}
			}
		}
	}
	return links
}

// representative picks the best graded photo of a group, the first one on
// ties or when no photo is graded.
func representative(group []gallery.Photo) gallery.Photo {
	best := group[0]
	for _, p := range group[1:] {
		if p.Grade != nil && (best.Grade == nil || *p.Grade > *best.Grade) {
			best = p
		}
	}
	return best
}

func formatDate(d *time.Time) string {
	if d == nil {
		return "undated"
	}
	return d.Format(titleLayout)
}

func rangeTitle(from, to *time.Time) string {
	f, t := formatDate(from), formatDate(to)
	if f == t {
		return f
	}
	return f + " - " + t
}
