package constants

// Handler constants
const (
	// MaxRequestBodySize limits JSON request bodies.
	MaxRequestBodySize = 64 << 10

	// MaxQueryLength limits the search query string accepted by the API.
	MaxQueryLength = 4096

	// MaxAutocompleteTermLength limits the autocomplete search term.
	MaxAutocompleteTermLength = 100
)
