// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrSurveyNotFound       = errors.New("survey not found")
	ErrSurveyInactive       = errors.New("survey is not active")
	ErrCandidateNotInSurvey = errors.New("candidate not in this survey")
	ErrAlreadyVoted         = errors.New("already voted in this survey")
	ErrDuplicateCredential  = errors.New("credential already registered")
	ErrCredentialNotFound   = errors.New("credential not found")
)

// Store wraps the SQL database with domain operations. Uniqueness-sensitive
// writes rely on the schema's UNIQUE constraints as the single arbiter under
// concurrency; a violation surfaces as the matching domain error.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for schema setup and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// isUniqueViolation reports whether err is a unique-constraint violation
// from either supported driver (Postgres 23505, SQLite UNIQUE message).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
