package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCatalog is a fixed catalog keyed by slug.
type stubCatalog struct {
	tags   map[string]gallery.Tag
	people map[string]gallery.Person
	places map[string]gallery.Place
	dates  map[int32]*time.Time
	err    error
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		tags: map[string]gallery.Tag{
			"sunset": {ID: 1, Name: "Sunset", Slug: "sunset"},
			"rain":   {ID: 2, Name: "Rain", Slug: "rain"},
			"beach":  {ID: 3, Name: "Beach", Slug: "beach"},
		},
		people: map[string]gallery.Person{
			"alice": {ID: 10, Name: "Alice", Slug: "alice"},
			"bob":   {ID: 11, Name: "Bob", Slug: "bob"},
		},
		places: map[string]gallery.Place{
			"oslo":   {ID: 20, Name: "Oslo", Slug: "oslo"},
			"bergen": {ID: 21, Name: "Bergen", Slug: "bergen"},
		},
		dates: map[int32]*time.Time{
			123: timePtr(time.Date(2019, 5, 17, 14, 30, 0, 0, time.UTC)),
			456: timePtr(time.Date(2021, 8, 1, 9, 0, 0, 0, time.UTC)),
			789: nil,
		},
	}
}

func lookup[F any](m map[string]F, slug string) (F, error) {
	if f, ok := m[slug]; ok {
		return f, nil
	}
	var zero F
	return zero, fmt.Errorf("slug %q: %w", slug, gallery.ErrFacetNotFound)
}

func (c *stubCatalog) TagBySlug(_ context.Context, slug string) (gallery.Tag, error) {
	return lookup(c.tags, slug)
}

func (c *stubCatalog) PersonBySlug(_ context.Context, slug string) (gallery.Person, error) {
	return lookup(c.people, slug)
}

func (c *stubCatalog) PlaceBySlug(_ context.Context, slug string) (gallery.Place, error) {
	return lookup(c.places, slug)
}

func (c *stubCatalog) PhotoDate(_ context.Context, id int32) (*time.Time, error) {
	if c.err != nil {
		return nil, c.err
	}
	d, ok := c.dates[id]
	if !ok {
		return nil, fmt.Errorf("photo %d: %w", id, gallery.ErrPhotoNotFound)
	}
	return d, nil
}

// recorder remembers what the resolver reported.
type recorder struct {
	dropped []string
	bad     []string
}

func (r *recorder) FilterDropped(kind gallery.Kind, slug string, _ error) {
	r.dropped = append(r.dropped, kind.Key()+":"+slug)
}

func (r *recorder) BadValue(key, value string) {
	r.bad = append(r.bad, key+"="+value)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func resolve(t *testing.T, raw string) (*Query, *recorder) {
	t.Helper()
	params, err := ParseParams(raw)
	require.NoError(t, err)
	rec := &recorder{}
	q, err := Resolve(context.Background(), params, newStubCatalog(), rec)
	require.NoError(t, err)
	return q, rec
}

func TestResolve_DateRange(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantSince *time.Time
		wantUntil *time.Time
	}{
		{
			name:      "dates only",
			raw:       "since_date=2020-01-01&until_date=2020-01-31",
			wantSince: timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
			wantUntil: timePtr(time.Date(2020, 1, 31, 23, 59, 59, 999000000, time.UTC)),
		},
		{
			name:      "dates and times",
			raw:       "since_time=08:15:00&since_date=2020-01-01&until_date=2020-01-31&until_time=18:00:30",
			wantSince: timePtr(time.Date(2020, 1, 1, 8, 15, 0, 0, time.UTC)),
			wantUntil: timePtr(time.Date(2020, 1, 31, 18, 0, 30, 0, time.UTC)),
		},
		{
			name:      "malformed time falls back to default",
			raw:       "since_date=2020-01-01&since_time=8am&until_date=2020-01-31&until_time=25:00:00",
			wantSince: timePtr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
			wantUntil: timePtr(time.Date(2020, 1, 31, 23, 59, 59, 999000000, time.UTC)),
		},
		{
			name: "malformed date is unset",
			raw:  "since_date=01/01/2020&since_time=10:00:00&until_date=",
		},
		{
			name: "time without date is unset",
			raw:  "since_time=10:00:00&until_time=11:00:00",
		},
		{
			name:      "last date wins",
			raw:       "since_date=2020-01-01&since_date=2021-03-04",
			wantSince: timePtr(time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, _ := resolve(t, tc.raw)
			assert.Equal(t, tc.wantSince, q.Since)
			assert.Equal(t, tc.wantUntil, q.Until)
		})
	}
}

func TestResolve_FacetFilters(t *testing.T) {
	q, rec := resolve(t, "t=sunset&t=!rain&t=unknown&p=alice&l=!oslo&p=!nobody&x=ignored")

	require.Len(t, q.Tags, 2)
	assert.Equal(t, "sunset", q.Tags[0].Item.Slug)
	assert.True(t, q.Tags[0].Include)
	assert.Equal(t, "rain", q.Tags[1].Item.Slug)
	assert.False(t, q.Tags[1].Include)

	require.Len(t, q.People, 1)
	assert.Equal(t, int32(10), q.People[0].Item.ID)
	assert.True(t, q.People[0].Include)

	require.Len(t, q.Places, 1)
	assert.Equal(t, "oslo", q.Places[0].Item.Slug)
	assert.False(t, q.Places[0].Include)

	assert.Equal(t, []string{"t:unknown", "p:nobody"}, rec.dropped)
	assert.Empty(t, rec.bad)
}

func TestResolve_DuplicateSlugOverwrites(t *testing.T) {
	q, _ := resolve(t, "t=sunset&t=beach&t=!sunset")

	require.Len(t, q.Tags, 2)
	assert.Equal(t, "sunset", q.Tags[0].Item.Slug)
	assert.False(t, q.Tags[0].Include)
	assert.Equal(t, "beach", q.Tags[1].Item.Slug)
}

func TestResolve_Position(t *testing.T) {
	tests := []struct {
		raw     string
		want    *bool
		wantBad []string
	}{
		{"pos=t", boolPtr(true), nil},
		{"pos=!t", boolPtr(false), nil},
		{"pos=t&pos=", nil, nil},
		{"pos=yes", nil, []string{"pos=yes"}},
		{"pos=t&q=!pos", boolPtr(false), nil},
		{"q=!pos&pos=t", boolPtr(true), nil},
		{"q=with pos", boolPtr(true), nil},
		{"q=pos and !pos", boolPtr(false), nil},
		{"pos=!t&q=holiday", boolPtr(false), nil},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			q, rec := resolve(t, tc.raw)
			assert.Equal(t, tc.want, q.HasPosition)
			assert.Equal(t, tc.wantBad, rec.bad)
		})
	}
}

func TestResolve_FreeText(t *testing.T) {
	q, _ := resolve(t, "q=summer+holiday&q=beach%20trip")
	assert.Equal(t, "beach trip", q.Text)
	assert.Nil(t, q.HasPosition)
}

func TestResolve_PhotoAnchors(t *testing.T) {
	t.Run("from and to override dates regardless of order", func(t *testing.T) {
		q, _ := resolve(t, "from=123&to=456&since_date=2000-01-01&until_date=2000-12-31")
		assert.Equal(t, timePtr(time.Date(2019, 5, 17, 14, 30, 0, 0, time.UTC)), q.Since)
		assert.Equal(t, timePtr(time.Date(2021, 8, 1, 9, 0, 0, 0, time.UTC)), q.Until)
	})

	t.Run("undated anchor clears the bound", func(t *testing.T) {
		q, _ := resolve(t, "since_date=2000-01-01&from=789")
		assert.Nil(t, q.Since)
	})

	t.Run("malformed id", func(t *testing.T) {
		params, _ := ParseParams("t=sunset&from=abc")
		_, err := Resolve(context.Background(), params, newStubCatalog(), nil)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "from", perr.Key)
		assert.Equal(t, "abc", perr.Value)
	})

	t.Run("id beyond int32 is malformed", func(t *testing.T) {
		params, _ := ParseParams("to=4294967296")
		_, err := Resolve(context.Background(), params, newStubCatalog(), nil)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "to", perr.Key)
		assert.NotErrorIs(t, err, gallery.ErrPhotoNotFound)
	})

	t.Run("unknown photo", func(t *testing.T) {
		params, _ := ParseParams("to=999")
		_, err := Resolve(context.Background(), params, newStubCatalog(), nil)
		assert.ErrorIs(t, err, gallery.ErrPhotoNotFound)
	})

	t.Run("catalog failure", func(t *testing.T) {
		catalog := newStubCatalog()
		catalog.err = errors.New("connection refused")
		params, _ := ParseParams("from=123")
		_, err := Resolve(context.Background(), params, catalog, nil)
		assert.EqualError(t, err, "connection refused")
	})
}

func TestQueryString(t *testing.T) {
	q := &Query{
		Tags: []Filter[gallery.Tag]{
			{Include: true, Item: gallery.Tag{ID: 1, Slug: "sunset"}},
			{Include: false, Item: gallery.Tag{ID: 2, Slug: "rain"}},
		},
		People: []Filter[gallery.Person]{
			{Include: true, Item: gallery.Person{ID: 10, Slug: "alice"}},
		},
		Places: []Filter[gallery.Place]{
			{Include: false, Item: gallery.Place{ID: 20, Slug: "oslo"}},
		},
		HasPosition: boolPtr(false),
		Since:       timePtr(time.Now()),
		Text:        "not echoed",
	}

	assert.Equal(t, "&t=sunset&t=!rain&l=!oslo&p=alice&pos=!t", q.QueryString())
	assert.Empty(t, (&Query{}).QueryString())
	assert.Equal(t, "&pos=t", (&Query{HasPosition: boolPtr(true)}).QueryString())
}

func TestQueryString_RoundTrip(t *testing.T) {
	inputs := []string{
		"t=sunset&t=!rain&p=alice&l=oslo&pos=t",
		"p=!bob&l=!bergen&t=beach&q=!pos",
		"l=oslo&l=bergen&p=alice&p=bob",
		"t=sunset&t=unknown&pos=!t",
		"",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			first, _ := resolve(t, raw)
			second, _ := resolve(t, first.QueryString())

			assert.Equal(t, first.Tags, second.Tags)
			assert.Equal(t, first.People, second.People)
			assert.Equal(t, first.Places, second.Places)
			assert.Equal(t, first.HasPosition, second.HasPosition)
			assert.Equal(t, first.QueryString(), second.QueryString())
		})
	}
}

func TestParseParams(t *testing.T) {
	params, err := ParseParams("t=a&&t=%21b&q=x+y&flag&p=%zz&l=c")

	require.Error(t, err)
	assert.Equal(t, []Param{
		{Key: "t", Value: "a"},
		{Key: "t", Value: "!b"},
		{Key: "q", Value: "x y"},
		{Key: "flag", Value: ""},
		{Key: "l", Value: "c"},
	}, params)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, (&Query{Text: "only text"}).IsEmpty())
	q, _ := resolve(t, "t=sunset")
	assert.False(t, q.IsEmpty())
}
