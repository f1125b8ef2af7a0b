package handlers

import (
	"errors"
	"net/http"

	"github.com/kozaktomas/photo-archive/internal/browse"
	"github.com/kozaktomas/photo-archive/internal/constants"
	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/metrics"
	"github.com/kozaktomas/photo-archive/internal/search"
	"github.com/kozaktomas/photo-archive/internal/web/middleware"
)

// SearchHandler serves the faceted search view.
type SearchHandler struct {
	metrics  *metrics.Metrics
	reporter search.Reporter
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(m *metrics.Metrics) *SearchHandler {
	return &SearchHandler{
		metrics:  m,
		reporter: search.Reporters{search.LogReporter{}, m},
	}
}

// Search resolves the query string, groups the matching photos by time and
// returns the navigation links.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if len(r.URL.RawQuery) > constants.MaxQueryLength {
		h.metrics.ObserveSearch(metrics.OutcomeBadRequest, 0, 0)
		respondError(w, http.StatusRequestURITooLong, "query too long")
		return
	}

	catalog, err := database.GetCatalog(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, errStorageUnavailable)
		return
	}
	collection, err := database.GetCollection(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, errStorageUnavailable)
		return
	}

	res, err := browse.Run(r.Context(), catalog, collection, browse.Request{
		RawQuery: r.URL.RawQuery,
		Scope:    middleware.GetScopeFromContext(r.Context()),
		Reporter: h.reporter,
	})
	if err != nil {
		h.respondSearchError(w, r, err)
		return
	}

	h.metrics.ObserveSearch(metrics.OutcomeOK, res.Count, res.Groups)
	respondJSON(w, http.StatusOK, res)
}

func (h *SearchHandler) respondSearchError(w http.ResponseWriter, r *http.Request, err error) {
	if !browse.IsClientError(err) {
		h.metrics.ObserveSearch(metrics.OutcomeError, 0, 0)
		log.Errorf("web: search %q: %v", sanitizeForLog(r.URL.RawQuery), err)
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	var perr *search.ParseError
	if errors.As(err, &perr) {
		h.metrics.ObserveSearch(metrics.OutcomeBadRequest, 0, 0)
		respondError(w, http.StatusBadRequest, perr.Error())
		return
	}
	h.metrics.ObserveSearch(metrics.OutcomeNotFound, 0, 0)
	respondError(w, http.StatusNotFound, "photo not found")
}
