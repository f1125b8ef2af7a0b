package search

import "fmt"

// ParseError reports a query parameter whose value could not be parsed and
// that can not simply be ignored.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value for %q: %q: %v", e.Key, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
