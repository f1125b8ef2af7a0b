package links

import (
	"context"
	"testing"
	"time"

	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
	"github.com/kozaktomas/photo-archive/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int) *time.Time {
	d := time.Date(2022, 3, day, 12, 0, 0, 0, time.UTC)
	return &d
}

func grade(g int16) *int16 {
	return &g
}

// filterQuery resolves raw against a catalog that knows every slug.
func filterQuery(t *testing.T, raw string) *search.Query {
	t.Helper()
	params, err := search.ParseParams(raw)
	require.NoError(t, err)
	q, err := search.Resolve(context.Background(), params, anyCatalog{}, nil)
	require.NoError(t, err)
	return q
}

type anyCatalog struct{}

func (anyCatalog) TagBySlug(_ context.Context, s string) (gallery.Tag, error) {
	return gallery.Tag{ID: 1, Name: s, Slug: s}, nil
}

func (anyCatalog) PersonBySlug(_ context.Context, s string) (gallery.Person, error) {
	return gallery.Person{ID: 2, Name: s, Slug: s}, nil
}

func (anyCatalog) PlaceBySlug(_ context.Context, s string) (gallery.Place, error) {
	return gallery.Place{ID: 3, Name: s, Slug: s}, nil
}

func (anyCatalog) PhotoDate(context.Context, int32) (*time.Time, error) {
	return nil, nil
}

func TestMaterialize_Ungrouped(t *testing.T) {
	photos := []gallery.Photo{
		{ID: 5, Date: at(3)},
		{ID: 4},
	}

	links := Materialize(nil, photos, SearchPath, filterQuery(t, "t=sunset"))

	require.Len(t, links, 2)
	assert.Equal(t, PhotoLink{Href: "/img/5", Title: "2022-03-03", ID: 5, Count: 1, First: at(3), Last: at(3)}, links[0])
	assert.Equal(t, "/img/4", links[1].Href, "direct photo links carry no filters")
	assert.Equal(t, "undated", links[1].Title)
	assert.False(t, links[0].IsGroup())
}

func TestMaterialize_Groups(t *testing.T) {
	photos := []gallery.Photo{
		{ID: 30, Date: at(20)},
		{ID: 31, Date: at(19), Grade: grade(2)},
		{ID: 32, Date: at(18), Grade: grade(5)},
		{ID: 33, Date: at(10), Grade: grade(5)},
		{ID: 34, Date: at(9)},
	}
	groups := []timeline.Group{{Start: 0, End: 3}, {Start: 3, End: 4}, {Start: 4, End: 5}}

	links := Materialize(groups, photos, SearchPath, nil)

	require.Len(t, links, 3)

	first := links[0]
	assert.Equal(t, "/search/?from=32&to=30", first.Href)
	assert.Equal(t, "3 photos", first.Label)
	assert.Equal(t, "2022-03-18 - 2022-03-20", first.Title)
	assert.Equal(t, int32(32), first.ID, "best graded photo represents the group")
	assert.Equal(t, 3, first.Count)
	assert.Equal(t, at(20), first.First)
	assert.Equal(t, at(18), first.Last)
	assert.True(t, first.IsGroup())

	single := links[1]
	assert.Equal(t, "/search/?from=33&to=33", single.Href)
	assert.Equal(t, "1 photo", single.Label)
	assert.Equal(t, "2022-03-10", single.Title)

	assert.Equal(t, int32(34), links[2].ID, "ungraded group falls back to its first photo")
}

func TestMaterialize_FilterEcho(t *testing.T) {
	photos := []gallery.Photo{{ID: 2, Date: at(2)}, {ID: 1, Date: at(1)}}
	groups := []timeline.Group{{Start: 0, End: 2}}
	q := filterQuery(t, "t=sunset&p=!bob&pos=t&since_date=2022-01-01")

	t.Run("search view", func(t *testing.T) {
		links := Materialize(groups, photos, SearchPath, q)
		assert.Equal(t, "/search/?from=1&to=2&t=sunset&p=!bob&pos=t", links[0].Href)
	})

	t.Run("other base path", func(t *testing.T) {
		links := Materialize(groups, photos, "/albums/7/", q)
		assert.Equal(t, "/albums/7/?from=1&to=2", links[0].Href)
	})

	t.Run("no filters", func(t *testing.T) {
		links := Materialize(groups, photos, SearchPath, filterQuery(t, "since_date=2022-01-01"))
		assert.Equal(t, "/search/?from=1&to=2", links[0].Href)
	})
}

func TestMaterialize_SplitPipeline(t *testing.T) {
	photos := make([]gallery.Photo, 40)
	for i := range photos {
		photos[i] = gallery.Photo{ID: int32(100 - i), Date: at(28 - i/2)}
	}

	groups := timeline.Split(photos)
	links := Materialize(groups, photos, SearchPath, nil)

	require.Len(t, links, timeline.TargetCount(len(photos)))
	total := 0
	for _, l := range links {
		total += l.Count
	}
	assert.Equal(t, len(photos), total)
}

func TestRepresentative(t *testing.T) {
	assert.Equal(t, int32(1), representative([]gallery.Photo{{ID: 1}, {ID: 2}}).ID)
	assert.Equal(t, int32(2), representative([]gallery.Photo{{ID: 1}, {ID: 2, Grade: grade(0)}}).ID)
	assert.Equal(t, int32(1), representative([]gallery.Photo{{ID: 1, Grade: grade(4)}, {ID: 2, Grade: grade(4)}}).ID)
}
