// Package browse runs a complete search: it resolves the query string,
// loads the matching photos, groups them by time and builds the links.
package browse

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/kozaktomas/photo-archive/internal/event"
	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/links"
	"github.com/kozaktomas/photo-archive/internal/search"
	"github.com/kozaktomas/photo-archive/internal/timeline"
)

var log = event.Log

// Result is the outcome of a search.
type Result struct {
	Query  *search.Query     `json:"query"`
	Links  []links.PhotoLink `json:"links"`
	Count  int               `json:"count"`
	Groups int               `json:"groups"`
}

// Request describes a search.
type Request struct {
	// RawQuery is the undecoded query string, without the leading "?".
	RawQuery string
	Scope    gallery.Scope
	// BasePath is the path group links point at. Defaults to links.SearchPath.
	BasePath string
	Reporter search.Reporter
}

// Run executes the search described by req.
func Run(ctx context.Context, catalog search.Catalog, source search.Collection, req Request) (*Result, error) {
	params, err := search.ParseParams(req.RawQuery)
	if err != nil {
		// Undecodable pairs are skipped; the rest still applies.
		log.Debugf("browse: %v", err)
	}

	q, err := search.Resolve(ctx, params, catalog, req.Reporter)
	if err != nil {
		return nil, err
	}

	photos, err := search.Compose(ctx, source, req.Scope, q)
	if err != nil {
		return nil, err
	}

	basePath := req.BasePath
	if basePath == "" {
		basePath = links.SearchPath
	}
	groups := timeline.Split(photos)

	return &Result{
		Query:  q,
		Links:  links.Materialize(groups, photos, basePath, q),
		Count:  len(photos),
		Groups: len(groups),
	}, nil
}

// IsClientError reports whether err was caused by the request rather than
// the storage: a malformed photo ID or an unknown anchor photo.
func IsClientError(err error) bool {
	var perr *search.ParseError
	return errors.As(err, &perr) || errors.Is(err, gallery.ErrPhotoNotFound)
}

// Describe renders a one line summary of a result.
func Describe(r *Result) string {
	photos := english.Plural(r.Count, "photo", "")
	if r.Groups == 0 {
		return photos
	}
	return fmt.Sprintf("%s in %s", photos, english.Plural(r.Groups, "group", ""))
}
