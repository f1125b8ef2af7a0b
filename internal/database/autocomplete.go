package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/kozaktomas/photo-archive/internal/gallery"
)

// Suggest collects up to AutocompleteLimit suggestions of every facet kind,
// tags first, then people, then places. A blank term suggests nothing.
func Suggest(ctx context.Context, c Completer, scope gallery.Scope, term string) ([]gallery.Suggestion, error) {
	term = strings.TrimSpace(term)
	out := []gallery.Suggestion{}
	if term == "" {
		return out, nil
	}

	for _, kind := range gallery.Kinds {
		found, err := c.Complete(ctx, scope, kind, term, AutocompleteLimit)
		if err != nil {
			return nil, fmt.Errorf("complete %s: %w", kind, err)
		}
		out = append(out, found...)
	}
	return out, nil
}
