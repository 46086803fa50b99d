// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types shared by
the Ballotpass API server.

Domain entities (User, Credential, Candidate, Survey, Vote) mirror the
persisted tables in package db. Tally types (TallyResult, CandidateResult)
are derived on demand and never stored.

Secrets are excluded from JSON serialization via `json:"-"` tags (e.g. a
credential's public key material is never echoed back to clients).
*/
package models
