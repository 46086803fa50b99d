// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/ballotpass/server/models"
)

// CastVote appends a vote to the ledger and returns the survey's updated
// total vote count.
//
// The "has this voter already voted" check is not a separate read: the
// INSERT races directly against the UNIQUE (survey_id, voter_address)
// constraint, so under concurrent calls for the same key exactly one
// insert wins and the rest observe ErrAlreadyVoted.
func (s *Store) CastVote(ctx context.Context, v models.Vote) (int, error) {
	sv, err := s.GetSurvey(ctx, v.SurveyID)
	if err != nil {
		return 0, err
	}
	if !sv.IsActive {
		return 0, ErrSurveyInactive
	}
	if !slices.Contains(sv.Candidates, v.CandidateID) {
		return 0, ErrCandidateNotInSurvey
	}

	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vote (survey_id, candidate_id, voter_address, tx_ref, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.SurveyID, v.CandidateID, v.VoterAddress, v.TxRef, v.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrAlreadyVoted
		}
		return 0, fmt.Errorf("failed to insert vote: %w", err)
	}

	return s.CountVotes(ctx, v.SurveyID)
}

// HasVoted reports whether the voter has a committed vote in the survey.
func (s *Store) HasVoted(ctx context.Context, surveyID, voterAddress string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE survey_id = $1 AND voter_address = $2
		)
	`, surveyID, voterAddress).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

// CountVotes returns the number of ledger entries for the survey.
func (s *Store) CountVotes(ctx context.Context, surveyID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE survey_id = $1
	`, surveyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// VotesByAddress lists a voter's ledger entries across all surveys.
func (s *Store) VotesByAddress(ctx context.Context, voterAddress string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT survey_id, candidate_id, voter_address, COALESCE(tx_ref, ''), created_at
		FROM vote WHERE voter_address = $1 ORDER BY created_at
	`, voterAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.SurveyID, &v.CandidateID, &v.VoterAddress, &v.TxRef, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
