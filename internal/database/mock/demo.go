package mock

import (
	"time"

	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
)

// NewDemoBackend returns a backend filled with a small made-up archive:
// a few trips over three years, some public, some with coordinates.
func NewDemoBackend() *MockBackend {
	m := NewMockBackend()

	tags := []gallery.Tag{m.AddTag("Sunset"), m.AddTag("Mountains"), m.AddTag("Family"), m.AddTag("Food")}
	people := []gallery.Person{m.AddPerson("Jana Nováková"), m.AddPerson("Petr Svoboda")}
	places := []gallery.Place{m.AddPlace("Plzeň"), m.AddPlace("Tatry"), m.AddPlace("Lisboa")}

	trips := []struct {
		start time.Time
		shots int
		place gallery.Place
	}{
		{time.Date(2022, 7, 2, 9, 0, 0, 0, time.UTC), 24, places[1]},
		{time.Date(2023, 4, 14, 16, 0, 0, 0, time.UTC), 18, places[2]},
		{time.Date(2023, 12, 24, 18, 0, 0, 0, time.UTC), 12, places[0]},
		{time.Date(2024, 8, 10, 7, 30, 0, 0, time.UTC), 30, places[1]},
	}

	id := int32(1)
	for _, trip := range trips {
		for i := range trip.shots {
			date := trip.start.Add(time.Duration(i*47) * time.Minute)
			grade := int16((int(id) * 7) % 5)
			c := search.Candidate{
				Photo:       gallery.Photo{ID: id, Date: &date, Grade: &grade},
				Public:      id%3 != 0,
				HasPosition: i%2 == 0,
				Facets: map[gallery.Kind][]int32{
					gallery.KindTag:    {tags[i%len(tags)].ID},
					gallery.KindPerson: {people[i%len(people)].ID},
					gallery.KindPlace:  {trip.place.ID},
				},
			}
			m.AddPhoto(c)
			id++
		}
	}

	// A handful of scans without a known date.
	for range 5 {
		m.AddPhoto(search.Candidate{
			Photo:  gallery.Photo{ID: id},
			Public: true,
			Facets: map[gallery.Kind][]int32{gallery.KindTag: {tags[2].ID}},
		})
		id++
	}
	return m
}
