// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ballotpass/server/auth"
	"github.com/ballotpass/server/middleware"
	"github.com/ballotpass/server/models"
	"github.com/ballotpass/server/session"
	"github.com/ballotpass/server/store"
)

type PasskeyHandler struct {
	sessions *session.Manager
	store    *store.Store
}

func NewPasskeyHandler(sessions *session.Manager, st *store.Store) *PasskeyHandler {
	return &PasskeyHandler{sessions: sessions, store: st}
}

// RegisterOptions handles POST /api/passkey/register/options
// Issues a one-time challenge bound to a new registration session.
func (h *PasskeyHandler) RegisterOptions(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterOptionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.DisplayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and displayName are required")
		return
	}

	s, err := h.sessions.CreateChallenge(models.SessionRegister, req.Username, req.DisplayName)
	if err != nil {
		slog.Error("failed to create register challenge", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create challenge")
		return
	}

	slog.Info("register challenge issued", "session_id", s.ID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.RegisterOptionsResponse{
		SessionID:   s.ID,
		Challenge:   auth.EncodeChallenge(s.Challenge),
		UserID:      s.UserID,
		Username:    s.Username,
		DisplayName: s.DisplayName,
	})
}

// RegisterVerify handles POST /api/passkey/register/verify
// Consumes the pending session and stores the verified credential.
// The cryptographic attestation itself is validated upstream; this
// endpoint enforces session one-shot semantics and credential uniqueness.
func (h *PasskeyHandler) RegisterVerify(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVerifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SessionID == "" || req.CredentialID == "" || req.PublicKey == "" || req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sessionId, credentialId, publicKey and username are required")
		return
	}

	s, err := h.sessions.Consume(req.SessionID)
	if err != nil || s.Kind != models.SessionRegister {
		// Missing, expired, replayed, and wrong-kind sessions are all the
		// same condition to the caller.
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid or expired session")
		return
	}

	_, err = h.store.RegisterCredential(r.Context(), models.Credential{
		UserID:       s.UserID,
		CredentialID: req.CredentialID,
		PublicKey:    req.PublicKey,
		Username:     req.Username,
		DisplayName:  req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateCredential) {
			middleware.ErrorResponse(w, http.StatusConflict, "Credential already registered")
			return
		}
		slog.Error("failed to register credential", "error", err, "username", req.Username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register credential")
		return
	}

	slog.Info("credential registered", "username", req.Username, "user_id", s.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.RegisterVerifyResponse{
		Success:     true,
		UserID:      s.UserID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Message:     "Passkey registered successfully",
	})
}

// AuthenticateOptions handles POST /api/passkey/authenticate/options
func (h *PasskeyHandler) AuthenticateOptions(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.CreateChallenge(models.SessionAuthenticate, "", "")
	if err != nil {
		slog.Error("failed to create authenticate challenge", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create challenge")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthenticateOptionsResponse{
		SessionID: s.ID,
		Challenge: auth.EncodeChallenge(s.Challenge),
	})
}

// AuthenticateVerify handles POST /api/passkey/authenticate/verify
// Consumes the pending session, resolves the credential by exact
// (username, credentialId) match, and issues a bearer token.
func (h *PasskeyHandler) AuthenticateVerify(w http.ResponseWriter, r *http.Request) {
	var req models.AuthenticateVerifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SessionID == "" || req.CredentialID == "" || req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sessionId, credentialId and username are required")
		return
	}

	s, err := h.sessions.Consume(req.SessionID)
	if err != nil || s.Kind != models.SessionAuthenticate {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid or expired session")
		return
	}

	if _, err := h.store.FindCredential(r.Context(), req.Username, req.CredentialID); err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Credential not found")
			return
		}
		slog.Error("failed to look up credential", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "User not found")
			return
		}
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	authToken, err := auth.GenerateAuthToken()
	if err != nil {
		slog.Error("failed to generate auth token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to authenticate")
		return
	}

	slog.Info("authentication succeeded", "username", user.Username, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AuthenticateVerifyResponse{
		Success:     true,
		AuthToken:   authToken,
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Message:     "Authentication successful",
	})
}
