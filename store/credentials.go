// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ballotpass/server/models"
)

// RegisterCredential stores a newly verified passkey credential and
// upserts the owning identity, keyed by unique username. The credential is
// keyed by the full (username, credential_id) pair; the primary key is the
// arbiter, so a concurrent duplicate registration surfaces as
// ErrDuplicateCredential.
func (s *Store) RegisterCredential(ctx context.Context, cred models.Credential) (models.Credential, error) {
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credential (username, credential_id, user_id, public_key, display_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, cred.Username, cred.CredentialID, cred.UserID, cred.PublicKey, cred.DisplayName, cred.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.Credential{}, ErrDuplicateCredential
		}
		return models.Credential{}, fmt.Errorf("failed to insert credential: %w", err)
	}

	// First registration creates the identity; later registrations for the
	// same username refresh the display name only.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, username, display_name, wallet_address, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE SET display_name = excluded.display_name
	`, cred.UserID, cred.Username, cred.DisplayName, cred.UserID, time.Now())
	if err != nil {
		return models.Credential{}, fmt.Errorf("failed to upsert user: %w", err)
	}

	return cred, nil
}

// ListCredentials returns all registered credentials. Diagnostic use only.
func (s *Store) ListCredentials(ctx context.Context) ([]models.Credential, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, credential_id, user_id, public_key, display_name, created_at
		FROM credential ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	creds := []models.Credential{}
	for rows.Next() {
		var c models.Credential
		if err := rows.Scan(&c.Username, &c.CredentialID, &c.UserID, &c.PublicKey, &c.DisplayName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

// FindCredential looks up a credential by exact (username, credential_id)
// match. Used during authentication verify; prefix matches are not accepted.
func (s *Store) FindCredential(ctx context.Context, username, credentialID string) (models.Credential, error) {
	var cred models.Credential
	err := s.db.QueryRowContext(ctx, `
		SELECT username, credential_id, user_id, public_key, display_name, created_at
		FROM credential
		WHERE username = $1 AND credential_id = $2
	`, username, credentialID).Scan(
		&cred.Username, &cred.CredentialID, &cred.UserID,
		&cred.PublicKey, &cred.DisplayName, &cred.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("failed to query credential: %w", err)
	}

	return cred, nil
}
