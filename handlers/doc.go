// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ballotpass API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - PasskeyHandler: challenge issuance and ceremony verification
  - SurveyHandler: survey CRUD, voting, results, vote checks
  - UserHandler / CandidateHandler: administrative CRUD
  - DebugHandler: redacted state dump

# Passkey Flow

Registration and authentication both follow challenge → ceremony → verify:

	POST /api/passkey/register/options     → one-time challenge + session
	POST /api/passkey/register/verify      → consume session, store credential
	POST /api/passkey/authenticate/options → one-time challenge + session
	POST /api/passkey/authenticate/verify  → consume session, issue auth token

A session id works exactly once; replays and expired sessions are rejected
as "Invalid or expired session".

# Voting Flow

	POST /api/surveys/{id}/vote       → pay fee, record vote (saga)
	POST /api/surveys/{id}/check-vote → has this address voted?
	GET  /api/surveys/{id}/results    → deterministic tally

The vote endpoint distinguishes three failure shapes in its status codes:
nothing happened (4xx/502, retryable), paid-but-not-recorded (500 with the
transaction reference), and success.
*/
package handlers
