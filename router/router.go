// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/ballotpass/server/cliparse"
	"github.com/ballotpass/server/handlers"
	"github.com/ballotpass/server/middleware"
	"github.com/ballotpass/server/payment"
	"github.com/ballotpass/server/session"
	"github.com/ballotpass/server/store"
)

func NewRouter(st *store.Store, sessions *session.Manager, coordinator *payment.Coordinator, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	passkeyHandler := handlers.NewPasskeyHandler(sessions, st)
	surveyHandler := handlers.NewSurveyHandler(st, coordinator, cfg)
	userHandler := handlers.NewUserHandler(st)
	candidateHandler := handlers.NewCandidateHandler(st)
	debugHandler := handlers.NewDebugHandler(sessions, st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Passkey ceremonies
	mux.HandleFunc("POST /api/passkey/register/options", middleware.WithLogging(passkeyHandler.RegisterOptions))
	mux.HandleFunc("POST /api/passkey/register/verify", middleware.WithLogging(passkeyHandler.RegisterVerify))
	mux.HandleFunc("POST /api/passkey/authenticate/options", middleware.WithLogging(passkeyHandler.AuthenticateOptions))
	mux.HandleFunc("POST /api/passkey/authenticate/verify", middleware.WithLogging(passkeyHandler.AuthenticateVerify))

	// Surveys, voting, results
	mux.HandleFunc("POST /api/surveys", middleware.WithLogging(surveyHandler.Create))
	mux.HandleFunc("GET /api/surveys", middleware.WithLogging(surveyHandler.List))
	mux.HandleFunc("GET /api/surveys/{id}", middleware.WithLogging(surveyHandler.Get))
	mux.HandleFunc("PUT /api/surveys/{id}", middleware.WithLogging(surveyHandler.Update))
	mux.HandleFunc("DELETE /api/surveys/{id}", middleware.WithLogging(surveyHandler.Delete))
	mux.HandleFunc("POST /api/surveys/{id}/vote", middleware.WithLogging(surveyHandler.Vote))
	mux.HandleFunc("GET /api/surveys/{id}/results", middleware.WithLogging(surveyHandler.Results))
	mux.HandleFunc("POST /api/surveys/{id}/check-vote", middleware.WithLogging(surveyHandler.CheckVote))

	// Users
	mux.HandleFunc("POST /api/users", middleware.WithLogging(userHandler.Create))
	mux.HandleFunc("GET /api/users", middleware.WithLogging(userHandler.List))
	mux.HandleFunc("GET /api/users/{id}", middleware.WithLogging(userHandler.Get))
	mux.HandleFunc("PUT /api/users/{id}", middleware.WithLogging(userHandler.Update))
	mux.HandleFunc("DELETE /api/users/{id}", middleware.WithLogging(userHandler.Delete))

	// Candidates
	mux.HandleFunc("POST /api/candidates", middleware.WithLogging(candidateHandler.Create))
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("GET /api/candidates/{id}", middleware.WithLogging(candidateHandler.Get))
	mux.HandleFunc("PUT /api/candidates/{id}", middleware.WithLogging(candidateHandler.Update))
	mux.HandleFunc("DELETE /api/candidates/{id}", middleware.WithLogging(candidateHandler.Delete))

	// Diagnostics
	mux.HandleFunc("GET /api/debug", middleware.WithLogging(debugHandler.Dump))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotpass API v1"))
	})

	return mux
}
