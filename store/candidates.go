// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ballotpass/server/models"
)

func (s *Store) CreateCandidate(ctx context.Context, c models.Candidate) (models.Candidate, error) {
	if c.ID == "" {
		c.ID = "candidate-" + uuid.NewString()
	}
	c.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidate (id, name, party, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.Name, c.Party, c.Description, c.ImageURL, c.CreatedAt)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to insert candidate: %w", err)
	}

	return c, nil
}

func (s *Store) GetCandidate(ctx context.Context, id string) (models.Candidate, error) {
	var c models.Candidate
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(party, ''), COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM candidate WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Party, &c.Description, &c.ImageURL, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Candidate{}, ErrCandidateNotFound
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	return c, nil
}

func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(party, ''), COALESCE(description, ''), COALESCE(image_url, ''), created_at
		FROM candidate ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.Description, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *Store) UpdateCandidate(ctx context.Context, c models.Candidate) (models.Candidate, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE candidate SET name = $1, party = $2, description = $3, image_url = $4 WHERE id = $5
	`, c.Name, c.Party, c.Description, c.ImageURL, c.ID)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to update candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Candidate{}, ErrCandidateNotFound
	}
	return s.GetCandidate(ctx, c.ID)
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidate WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCandidateNotFound
	}
	return nil
}
