// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Server constants
const (
	// RequestTimeout bounds the time a handler may spend on one request.
	RequestTimeout = 30 * time.Second

	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout = 15 * time.Second

	// WriteTimeout is the maximum duration before timing out a response write.
	WriteTimeout = time.Minute

	// IdleTimeout is how long keep-alive connections stay open.
	IdleTimeout = time.Minute

	// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
	ShutdownTimeout = 10 * time.Second
)

// Facet constants
const (
	// MaxFacetNameLength matches the width of the name columns.
	MaxFacetNameLength = 100
)
