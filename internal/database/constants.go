package database

import "time"

const (
	// AutocompleteLimit is the number of suggestions returned per facet kind.
	AutocompleteLimit = 10

	// DefaultCacheTTL is how long resolved slugs and photo dates are kept.
	DefaultCacheTTL = 5 * time.Minute
)
