// Package http provides HTTP handlers for editing authentication entries.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/AuthKeeper/internal/middleware"
	"github.com/atinyakov/AuthKeeper/internal/models"
	"github.com/atinyakov/AuthKeeper/internal/service"
)

// EntryService defines the editing operations required by the EntriesHandler.
type EntryService interface {
	List(ctx context.Context) service.Snapshot
	Committed(ctx context.Context) []models.Entry
	Append(ctx context.Context) models.Entry
	Drop(ctx context.Context, id string)
	Patch(ctx context.Context, id string, f models.Fields)
	Commit(ctx context.Context, operator string) error
	Discard(ctx context.Context)
}

// EntriesHandler handles HTTP requests for the staged entry collection.
type EntriesHandler struct {
	EntryService EntryService
	Logger       *zap.Logger
}

// List handles GET /api/entries.
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.EntryService.List(r.Context()))
}

// Committed handles GET /api/committed.
func (h *EntriesHandler) Committed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.EntryService.Committed(r.Context()))
}

// Append handles POST /api/entries.
func (h *EntriesHandler) Append(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, h.EntryService.Append(r.Context()))
}

// Drop handles DELETE /api/entries/{id}. Unknown ids succeed.
func (h *EntriesHandler) Drop(w http.ResponseWriter, r *http.Request) {
	h.EntryService.Drop(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Patch handles PATCH /api/entries/{id}.
// The body is a partial update; absent fields are left untouched.
func (h *EntriesHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var f models.Fields
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if f.AuthType != nil && !f.AuthType.Valid() {
		http.Error(w, "invalid authType", http.StatusBadRequest)
		return
	}

	h.EntryService.Patch(r.Context(), chi.URLParam(r, "id"), f)
	w.WriteHeader(http.StatusNoContent)
}

// Commit handles POST /api/commit.
func (h *EntriesHandler) Commit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.EntryService.Commit(ctx, middleware.GetOperatorFromContext(ctx)); err != nil {
		h.logger().Error("commit failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Discard handles POST /api/discard.
func (h *EntriesHandler) Discard(w http.ResponseWriter, r *http.Request) {
	h.EntryService.Discard(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntriesHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
