// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ballotpass/server/middleware"
	"github.com/ballotpass/server/models"
	"github.com/ballotpass/server/store"
)

type CandidateHandler struct {
	store *store.Store
}

func NewCandidateHandler(st *store.Store) *CandidateHandler {
	return &CandidateHandler{store: st}
}

// Create handles POST /api/candidates
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	candidate, err := h.store.CreateCandidate(r.Context(), models.Candidate{
		Name:        req.Name,
		Party:       req.Party,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		slog.Error("failed to create candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// List handles GET /api/candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.store.ListCandidates(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Get handles GET /api/candidates/{id}
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.store.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrCandidateNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		slog.Error("failed to get candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// Update handles PUT /api/candidates/{id}
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, err := h.store.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrCandidateNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		slog.Error("failed to get candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Name != "" {
		candidate.Name = req.Name
	}
	if req.Party != "" {
		candidate.Party = req.Party
	}
	if req.Description != "" {
		candidate.Description = req.Description
	}
	if req.ImageURL != "" {
		candidate.ImageURL = req.ImageURL
	}

	updated, err := h.store.UpdateCandidate(r.Context(), candidate)
	if err != nil {
		slog.Error("failed to update candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/candidates/{id}
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCandidate(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrCandidateNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
