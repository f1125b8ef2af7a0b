package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kozaktomas/photo-archive/internal/constants"
	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/gallery"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateFacetRequest is the body of a facet creation request.
type CreateFacetRequest struct {
	// Kind is a kind name ("tag") or key ("t").
	Kind string `json:"kind" validate:"required"`
	Name string `json:"name" validate:"required,max=100"`
}

// FacetResponse represents a facet in API responses.
type FacetResponse struct {
	Kind string `json:"kind"`
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func facetToResponse(f gallery.Facet) FacetResponse {
	return FacetResponse{
		Kind: f.Kind().String(),
		ID:   f.FacetID(),
		Name: f.FacetName(),
		Slug: f.FacetSlug(),
	}
}

// CreateFacet returns the facet whose slug matches the requested name,
// creating it first when needed.
func CreateFacet(w http.ResponseWriter, r *http.Request) {
	var req CreateFacetRequest
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, ok := gallery.ParseKind(req.Kind)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown facet kind")
		return
	}

	writer, err := database.GetFacetWriter(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, errStorageUnavailable)
		return
	}

	f, err := writer.EnsureFacet(r.Context(), kind, req.Name)
	if errors.Is(err, gallery.ErrInvalidName) {
		respondError(w, http.StatusUnprocessableEntity, "name has no usable slug")
		return
	}
	if err != nil {
		log.Errorf("web: creating %s %q: %v", kind, sanitizeForLog(req.Name), err)
		respondError(w, http.StatusInternalServerError, "could not create facet")
		return
	}
	respondJSON(w, http.StatusOK, facetToResponse(f))
}
