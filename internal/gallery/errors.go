package gallery

import "errors"

var (
	// ErrFacetNotFound is returned when no facet has the requested slug.
	ErrFacetNotFound = errors.New("facet not found")

	// ErrPhotoNotFound is returned when no photo has the requested id.
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrInvalidName is returned when a facet name yields an empty slug.
	ErrInvalidName = errors.New("name has no usable slug")
)
