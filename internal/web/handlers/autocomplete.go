package handlers

import (
	"net/http"

	"github.com/kozaktomas/photo-archive/internal/constants"
	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/web/middleware"
)

// Autocomplete suggests tags, people and places whose name contains the q
// parameter.
func Autocomplete(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if len(term) > constants.MaxAutocompleteTermLength {
		respondError(w, http.StatusBadRequest, "search term too long")
		return
	}

	completer, err := database.GetCompleter(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, errStorageUnavailable)
		return
	}

	suggestions, err := database.Suggest(r.Context(), completer, middleware.GetScopeFromContext(r.Context()), term)
	if err != nil {
		log.Errorf("web: autocomplete %q: %v", sanitizeForLog(term), err)
		respondError(w, http.StatusInternalServerError, "autocomplete failed")
		return
	}
	respondJSON(w, http.StatusOK, suggestions)
}
