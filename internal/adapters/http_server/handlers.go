// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"insight_engine/internal/app"
	"insight_engine/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct {
	R *app.RefreshService
	Q *app.QueryService
	// Lookup resolves a product when the refresh body omits its name. Optional.
	Lookup func(id int64) (domain.Product, bool)
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type refreshRequest struct {
	Name    string `json:"name"`
	Brand   string `json:"brand"`
	Profile string `json:"profile"`
}

type refreshResponse struct {
	RunID          string                   `json:"run_id"`
	Outcome        app.Outcome              `json:"outcome"`
	Message        string                   `json:"message"`
	TotalFound     int                      `json:"total_found"`
	Analyzed       int                      `json:"analyzed"`
	ElapsedSeconds float64                  `json:"elapsed_seconds"`
	Snapshot       *domain.AggregatedReview `json:"snapshot"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/products/{id}/refresh", h.refresh)
	s.mux.Get("/v1/products/{id}/aggregate", h.getAggregate)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
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

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct):
		writeProblem(w, http.StatusBadRequest, "Invalid Product", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "no aggregate for this product")
	case errors.Is(err, domain.ErrLocked):
		writeProblem(w, http.StatusConflict, "Conflict", "a refresh for this product is already running")
	case errors.Is(err, domain.ErrProviderUnavailable), errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", err.Error())
	case errors.Is(err, context.Canceled):
		writeProblem(w, http.StatusServiceUnavailable, "Canceled", "request canceled")
	default:
		log.Error().Err(err).Msg("unhandled service error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req refreshRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be a JSON object")
		return
	}
	product := domain.Product{ID: id, Name: req.Name, Brand: req.Brand, Profile: req.Profile}
	if product.Name == "" && h.Lookup != nil {
		if seeded, found := h.Lookup(id); found {
			product = seeded
			if req.Profile != "" {
				product.Profile = req.Profile
			}
		}
	}

	res, err := h.R.Refresh(r.Context(), product)
	if err != nil {
		writeError(w, err)
		return
	}

	out := refreshResponse{
		RunID:          res.RunID,
		Outcome:        res.Outcome,
		TotalFound:     res.TotalFound,
		Analyzed:       res.Analyzed,
		ElapsedSeconds: res.Elapsed.Seconds(),
		Snapshot:       res.Snapshot,
	}
	status := http.StatusOK
	switch res.Outcome {
	case app.OutcomeUpdated:
		out.Message = "aggregated review updated"
	case app.OutcomeNoDocuments:
		out.Message = "no reviews found for this product"
	case app.OutcomeTimedOut:
		out.Message = "refresh exceeded its time budget; partial results were saved"
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, out)
}

func (h *Handlers) getAggregate(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	agg, err := h.Q.GetCached(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(agg)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write aggregate body")
	}
}
