// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/ballotpass/server/auth"
	"github.com/ballotpass/server/cliparse"
	"github.com/ballotpass/server/middleware"
	"github.com/ballotpass/server/models"
	"github.com/ballotpass/server/payment"
	"github.com/ballotpass/server/store"
	"github.com/ballotpass/server/wallet"
)

type SurveyHandler struct {
	store       *store.Store
	coordinator *payment.Coordinator
	cfg         cliparse.Config
}

func NewSurveyHandler(st *store.Store, coordinator *payment.Coordinator, cfg cliparse.Config) *SurveyHandler {
	return &SurveyHandler{store: st, coordinator: coordinator, cfg: cfg}
}

// Create handles POST /api/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Candidates) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "survey needs at least 2 candidates")
		return
	}

	sv := models.Survey{
		Name:        req.Name,
		Description: req.Description,
		Candidates:  req.Candidates,
		IsActive:    true,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   req.CreatedBy,
	}
	if req.IsActive != nil {
		sv.IsActive = *req.IsActive
	}
	if req.VoteFee != nil {
		sv.VoteFee = *req.VoteFee
	}

	created, err := h.store.CreateSurvey(r.Context(), sv)
	if err != nil {
		slog.Error("failed to create survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create survey")
		return
	}

	slog.Info("survey created", "survey_id", created.ID, "candidates", len(created.Candidates))

	middleware.JSONResponse(w, http.StatusCreated, created)
}

// List handles GET /api/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.store.ListSurveys(r.Context())
	if err != nil {
		slog.Error("failed to list surveys", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, surveys)
}

// Get handles GET /api/surveys/{id}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	sv, err := h.store.GetSurvey(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrSurveyNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
			return
		}
		slog.Error("failed to get survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sv)
}

// Update handles PUT /api/surveys/{id} with merge semantics: omitted
// fields keep their stored values.
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sv, err := h.store.GetSurvey(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrSurveyNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
			return
		}
		slog.Error("failed to get survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Name != "" {
		sv.Name = req.Name
	}
	if req.Description != "" {
		sv.Description = req.Description
	}
	if req.Candidates != nil {
		sv.Candidates = req.Candidates
	}
	if req.StartDate != nil {
		sv.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		sv.EndDate = req.EndDate
	}
	if req.IsActive != nil {
		sv.IsActive = *req.IsActive
	}
	if req.VoteFee != nil {
		sv.VoteFee = *req.VoteFee
	}

	updated, err := h.store.UpdateSurvey(r.Context(), sv)
	if err != nil {
		slog.Error("failed to update survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update survey")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/surveys/{id}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSurvey(r.Context(), r.PathValue("id")); err != nil {
		slog.Error("failed to delete survey", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete survey")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Vote handles POST /api/surveys/{id}/vote
// Runs the full pay-then-record saga through the payment coordinator.
func (h *SurveyHandler) Vote(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" || req.VoterAddress == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidateId and voterAddress are required")
		return
	}
	if err := wallet.ValidateAddress(req.VoterAddress); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid voter wallet address")
		return
	}

	voterHash := auth.HashAddress(req.VoterAddress, h.cfg.AddressSalt)

	out, err := h.coordinator.Vote(r.Context(), surveyID, req.CandidateID, req.VoterAddress)
	if err != nil {
		h.writeVoteError(w, surveyID, voterHash, out, err)
		return
	}

	slog.Info("vote recorded",
		"survey_id", surveyID, "voter", voterHash, "tx_ref", out.TxRef,
		"total_votes", humanize.Comma(int64(out.TotalVotes)))

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Success:    true,
		Message:    "Vote registered successfully",
		TotalVotes: out.TotalVotes,
		TxRef:      out.TxRef,
	})
}

func (h *SurveyHandler) writeVoteError(w http.ResponseWriter, surveyID, voterHash string, out payment.Outcome, err error) {
	var ppe *payment.PostPaymentError
	switch {
	case errors.As(err, &ppe):
		// Fatal from the system's perspective: the fee settled but the vote
		// was not recorded. Surface the reference verbatim, never retry.
		middleware.JSONResponse(w, http.StatusInternalServerError, models.VoteFailureResponse{
			Success: false,
			Error:   ppe.Cause.Error(),
			Message: "Your payment was processed but the vote could not be recorded. " +
				"Contact support with this transaction reference: " + ppe.TxRef,
			TxRef: ppe.TxRef,
		})
	case errors.Is(err, store.ErrSurveyNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
	case errors.Is(err, store.ErrSurveyInactive):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Survey is not active")
	case errors.Is(err, store.ErrCandidateNotInSurvey):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate not in this survey")
	case errors.Is(err, store.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this survey")
	case errors.Is(err, payment.ErrInsufficientBalance):
		middleware.ErrorResponse(w, http.StatusPaymentRequired, "Insufficient balance to cover the vote fee")
	case errors.Is(err, payment.ErrPaymentFailed):
		slog.Error("vote payment failed", "survey_id", surveyID, "voter", voterHash, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Payment failed, no vote was recorded")
	default:
		slog.Error("vote failed", "survey_id", surveyID, "voter", voterHash, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
	}
}

// Results handles GET /api/surveys/{id}/results
func (h *SurveyHandler) Results(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("id")

	tally, err := h.store.ComputeResults(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, store.ErrSurveyNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
			return
		}
		slog.Error("failed to compute results", "error", err, "survey_id", surveyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	slog.Info("results computed",
		"survey_id", surveyID, "total_votes", humanize.Comma(int64(tally.TotalVotes)))

	middleware.JSONResponse(w, http.StatusOK, tally)
}

// CheckVote handles POST /api/surveys/{id}/check-vote
func (h *SurveyHandler) CheckVote(w http.ResponseWriter, r *http.Request) {
	var req models.CheckVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.VoterAddress == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voterAddress is required")
		return
	}

	hasVoted, err := h.store.HasVoted(r.Context(), r.PathValue("id"), req.VoterAddress)
	if err != nil {
		slog.Error("failed to check vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckVoteResponse{HasVoted: hasVoted})
}
