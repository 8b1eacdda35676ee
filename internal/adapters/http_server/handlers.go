package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct {
	Reviews    *app.ReviewService
	Properties *app.PropertyService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/reviews", h.allReviews)
		r.Get("/reviews/hostaway", h.hostawayReviews)
		r.Get("/reviews/google", h.googleReviews)
		r.Patch("/reviews/{id}", h.approveReview)
		r.Post("/reviews/bulk", h.bulkApprove)
		r.Post("/reviews/reload", h.reload)
		r.Get("/properties", h.listProperties)
		r.Get("/properties/{id}", h.getProperty)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain failures onto the wire taxonomy.
func writeError(w http.ResponseWriter, err error, detail string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Invalid Request", detail)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", detail)
	case errors.Is(err, domain.ErrSourceIO):
		writeProblem(w, http.StatusInternalServerError, "Source Unavailable", detail)
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", detail)
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) hostawayReviews(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Reviews.GetHostawayReviews(r.Context())
	if err != nil {
		writeError(w, err, "failed to fetch hostaway reviews")
		return
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) googleReviews(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Reviews.GetGoogleReviews(r.Context(), r.URL.Query().Get("placeId"))
	if err != nil {
		writeError(w, err, "failed to fetch google reviews")
		return
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) allReviews(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Reviews.GetAllReviews(r.Context())
	if err != nil {
		writeError(w, err, "failed to fetch reviews")
		return
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) approveReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Approved *bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Approved == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must carry an approved boolean")
		return
	}
	rv, err := h.Reviews.Approve(r.Context(), id, *body.Approved)
	if err != nil {
		writeError(w, err, "failed to update review "+id)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rv); err != nil {
		log.Error().Err(err).Msg("failed to write approve response")
	}
}

func (h *Handlers) bulkApprove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs      []string `json:"ids"`
		Approved *bool    `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Approved == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "body must carry ids and an approved boolean")
		return
	}
	res, err := h.Reviews.ApproveBulk(r.Context(), body.IDs, *body.Approved)
	if err != nil {
		writeError(w, err, "failed to bulk update reviews")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error().Err(err).Msg("failed to write bulk response")
	}
}

func (h *Handlers) reload(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Reload(r.Context()); err != nil {
		writeError(w, err, "failed to reload dataset")
		return
	}
	h.Properties.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Properties.ListProperties(r.Context())
	if err != nil {
		writeError(w, err, "failed to list properties")
		return
	}
	writeJSON(w, r, summaries)
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.Properties.GetProperty(r.Context(), id)
	if err != nil {
		writeError(w, err, "property "+id+" not found")
		return
	}
	writeJSON(w, r, p)
}
