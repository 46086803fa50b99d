// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The UNIQUE constraints here are load-bearing: credential identity and the
// one-vote-per-(survey, voter) rule are enforced by the database, and the
// store layer treats violations as domain conflicts rather than hard errors.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users (identities)
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    display_name TEXT,
    email TEXT,
    wallet_address TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_app_user_username ON app_user(username);

-- Registered passkey credentials. Keyed by the full (username, credential_id)
-- pair; truncated-prefix keys collide.
CREATE TABLE IF NOT EXISTS credential (
    username TEXT NOT NULL,
    credential_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    public_key TEXT NOT NULL,
    display_name TEXT,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (username, credential_id)
);

CREATE INDEX IF NOT EXISTS idx_credential_username ON credential(username);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT,
    description TEXT,
    image_url TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Surveys
CREATE TABLE IF NOT EXISTS survey (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    start_date TIMESTAMP,
    end_date TIMESTAMP,
    vote_fee BIGINT NOT NULL DEFAULT 0,
    created_by TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Ordered candidate catalog per survey
CREATE TABLE IF NOT EXISTS survey_candidate (
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (survey_id, candidate_id)
);

CREATE INDEX IF NOT EXISTS idx_survey_candidate_survey ON survey_candidate(survey_id);

-- Vote ledger. Append-only; UNIQUE (survey_id, voter_address) is the
-- arbiter for double-vote races.
CREATE TABLE IF NOT EXISTS vote (
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL,
    voter_address TEXT NOT NULL,
    tx_ref TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (survey_id, voter_address)
);

CREATE INDEX IF NOT EXISTS idx_vote_survey ON vote(survey_id);
CREATE INDEX IF NOT EXISTS idx_vote_survey_candidate ON vote(survey_id, candidate_id);
`
