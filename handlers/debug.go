// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ballotpass/server/middleware"
	"github.com/ballotpass/server/session"
	"github.com/ballotpass/server/store"
)

type DebugHandler struct {
	sessions *session.Manager
	store    *store.Store
}

func NewDebugHandler(sessions *session.Manager, st *store.Store) *DebugHandler {
	return &DebugHandler{sessions: sessions, store: st}
}

type debugCredential struct {
	Username     string `json:"username"`
	CredentialID string `json:"credentialId"` // truncated
}

type debugSession struct {
	SessionID string `json:"sessionId"`
	Kind      string `json:"kind"`
	Username  string `json:"username,omitempty"`
}

// Dump handles GET /api/debug
// Credential ids are truncated and public keys omitted entirely.
func (h *DebugHandler) Dump(w http.ResponseWriter, r *http.Request) {
	creds, err := h.store.ListCredentials(r.Context())
	if err != nil {
		slog.Error("failed to list credentials", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	debugCreds := make([]debugCredential, 0, len(creds))
	for _, c := range creds {
		id := c.CredentialID
		if len(id) > 20 {
			id = id[:20] + "..."
		}
		debugCreds = append(debugCreds, debugCredential{
			Username:     c.Username,
			CredentialID: id,
		})
	}

	debugSessions := []debugSession{}
	for _, s := range h.sessions.Snapshot() {
		debugSessions = append(debugSessions, debugSession{
			SessionID: s.ID,
			Kind:      s.Kind,
			Username:  s.Username,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"users":       users,
		"credentials": debugCreds,
		"sessions":    debugSessions,
	})
}
