package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/database/mock"
	"github.com/kozaktomas/photo-archive/internal/gallery"
	"github.com/kozaktomas/photo-archive/internal/search"
	"github.com/kozaktomas/photo-archive/internal/web/middleware"
)

// setupMockBackend registers an in-memory backend for the duration of the
// test:
//
//	1 public  2020-01-01 tag sunset, place Plzeň
//	2 private 2020-02-01 tag sunset, person Jana
//	3 public  undated    tag rain
func setupMockBackend(t *testing.T) *mock.MockBackend {
	t.Helper()
	m := mock.NewMockBackend()
	sunset := m.AddTag("Sunset")
	rain := m.AddTag("Rain")
	jana := m.AddPerson("Jana")
	plzen := m.AddPlace("Plzeň")

	d1 := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2020, 2, 1, 10, 0, 0, 0, time.UTC)
	m.AddPhoto(search.Candidate{
		Photo:  gallery.Photo{ID: 1, Date: &d1},
		Public: true,
		Facets: map[gallery.Kind][]int32{gallery.KindTag: {sunset.ID}, gallery.KindPlace: {plzen.ID}},
	})
	m.AddPhoto(search.Candidate{
		Photo:  gallery.Photo{ID: 2, Date: &d2},
		Facets: map[gallery.Kind][]int32{gallery.KindTag: {sunset.ID}, gallery.KindPerson: {jana.ID}},
	})
	m.AddPhoto(search.Candidate{
		Photo:  gallery.Photo{ID: 3},
		Public: true,
		Facets: map[gallery.Kind][]int32{gallery.KindTag: {rain.ID}},
	})

	database.RegisterBackend(m, 0)
	t.Cleanup(func() { database.RegisterBackend(nil, 0) })
	return m
}

// authorized marks the request as coming from a holder of the API token.
func authorized(r *http.Request) *http.Request {
	return r.WithContext(middleware.SetScopeInContext(r.Context(), gallery.Scope{Authorized: true}))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
