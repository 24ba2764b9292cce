package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Fitment/internal/personality"
)

type PersonalityHandler struct {
	catalogue *personality.Catalogue
}

func NewPersonalityHandler(c *personality.Catalogue) *PersonalityHandler {
	if c == nil {
		c = personality.Default()
	}
	return &PersonalityHandler{catalogue: c}
}

// List returns the catalogue.
// GET /api/v1/personality/styles
func (h *PersonalityHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": h.catalogue.Version(),
		"styles":  h.catalogue.Styles(),
	})
}

// Resolve looks a style name up the same way candidate profiles are resolved.
// GET /api/v1/personality/styles/{name}
func (h *PersonalityHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid style name"})
		return
	}
	style, ok := h.catalogue.Resolve(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "style not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":  name,
		"name":   style.Name,
		"vector": style.Vector,
	})
}
