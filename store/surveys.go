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

func (s *Store) CreateSurvey(ctx context.Context, sv models.Survey) (models.Survey, error) {
	if sv.ID == "" {
		sv.ID = "survey-" + uuid.NewString()
	}
	sv.CreatedAt = time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO survey (id, name, description, is_active, start_date, end_date, vote_fee, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, sv.ID, sv.Name, sv.Description, sv.IsActive, sv.StartDate, sv.EndDate, sv.VoteFee, sv.CreatedBy, sv.CreatedAt)
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to insert survey: %w", err)
	}

	if err := replaceCatalog(ctx, tx, sv.ID, sv.Candidates); err != nil {
		return models.Survey{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Survey{}, fmt.Errorf("failed to commit survey: %w", err)
	}

	return sv, nil
}

// GetSurvey returns the survey and its candidate catalog in stored order.
func (s *Store) GetSurvey(ctx context.Context, id string) (models.Survey, error) {
	var sv models.Survey
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), is_active, start_date, end_date, vote_fee, COALESCE(created_by, ''), created_at
		FROM survey WHERE id = $1
	`, id).Scan(&sv.ID, &sv.Name, &sv.Description, &sv.IsActive, &sv.StartDate, &sv.EndDate, &sv.VoteFee, &sv.CreatedBy, &sv.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Survey{}, ErrSurveyNotFound
	}
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to query survey: %w", err)
	}

	sv.Candidates, err = s.surveyCatalog(ctx, id)
	if err != nil {
		return models.Survey{}, err
	}

	return sv, nil
}

func (s *Store) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), is_active, start_date, end_date, vote_fee, COALESCE(created_by, ''), created_at
		FROM survey ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query surveys: %w", err)
	}
	defer rows.Close()

	surveys := []models.Survey{}
	for rows.Next() {
		var sv models.Survey
		if err := rows.Scan(&sv.ID, &sv.Name, &sv.Description, &sv.IsActive, &sv.StartDate, &sv.EndDate, &sv.VoteFee, &sv.CreatedBy, &sv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range surveys {
		surveys[i].Candidates, err = s.surveyCatalog(ctx, surveys[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return surveys, nil
}

// UpdateSurvey replaces the survey row and, when sv.Candidates is non-nil,
// its candidate catalog. Callers merge partial updates before saving.
func (s *Store) UpdateSurvey(ctx context.Context, sv models.Survey) (models.Survey, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE survey
		SET name = $1, description = $2, is_active = $3, start_date = $4, end_date = $5, vote_fee = $6
		WHERE id = $7
	`, sv.Name, sv.Description, sv.IsActive, sv.StartDate, sv.EndDate, sv.VoteFee, sv.ID)
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to update survey: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Survey{}, ErrSurveyNotFound
	}

	if sv.Candidates != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM survey_candidate WHERE survey_id = $1`, sv.ID); err != nil {
			return models.Survey{}, fmt.Errorf("failed to clear catalog: %w", err)
		}
		if err := replaceCatalog(ctx, tx, sv.ID, sv.Candidates); err != nil {
			return models.Survey{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Survey{}, fmt.Errorf("failed to commit survey update: %w", err)
	}

	return s.GetSurvey(ctx, sv.ID)
}

func (s *Store) DeleteSurvey(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM survey WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	return nil
}

func (s *Store) surveyCatalog(ctx context.Context, surveyID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate_id FROM survey_candidate
		WHERE survey_id = $1 ORDER BY position
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query survey catalog: %w", err)
	}
	defer rows.Close()

	catalog := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		catalog = append(catalog, id)
	}
	return catalog, rows.Err()
}

func replaceCatalog(ctx context.Context, tx *sql.Tx, surveyID string, candidateIDs []string) error {
	for i, candidateID := range candidateIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO survey_candidate (survey_id, candidate_id, position)
			VALUES ($1, $2, $3)
		`, surveyID, candidateID, i)
		if err != nil {
			return fmt.Errorf("failed to insert catalog entry: %w", err)
		}
	}
	return nil
}
