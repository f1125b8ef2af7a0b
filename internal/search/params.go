package search

import (
	"fmt"
	"net/url"
	"strings"
)

// Param is a single key/value pair of a query string.
type Param struct {
	Key   string
	Value string
}

// ParseParams splits a raw query string into its key/value pairs, keeping
// the order in which they appear. url.Values can not be used here since the
// resolver depends on the relative order of different keys.
//
// Pairs that fail to unescape are skipped; the first such failure is
// returned together with the pairs that could be decoded.
func ParseParams(raw string) ([]Param, error) {
	var (
		params   []Param
		firstErr error
	)
	for part := range strings.SplitSeq(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("invalid query key %q: %w", key, err)
			}
			continue
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("invalid value for %q: %w", k, err)
			}
			continue
		}
		params = append(params, Param{Key: k, Value: v})
	}
	return params, firstErr
}

