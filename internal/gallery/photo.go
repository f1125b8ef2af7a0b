package gallery

import "time"

// Photo is the projection of a stored photo needed for searching and
// grouping.
type Photo struct {
	ID    int32      `json:"id"`
	Date  *time.Time `json:"date,omitempty"`
	Grade *int16     `json:"grade,omitempty"`
}

// Timestamp returns the photo date in Unix seconds. Photos without a date
// count as the oldest possible value, zero.
func (p Photo) Timestamp() int64 {
	if p.Date == nil {
		return 0
	}
	return p.Date.Unix()
}

// Scope limits which photos a caller may see.
type Scope struct {
	Authorized bool
}

// Public is the scope of anonymous callers.
var Public = Scope{}
