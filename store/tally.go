// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"

	"github.com/ballotpass/server/models"
)

// ComputeResults derives the tally for a survey from the vote ledger.
// Deterministic: rows are seeded in catalog order, then stable-sorted by
// vote count descending, so ties keep their catalog position. Catalog
// entries with no candidate record are reported under a sentinel name
// rather than omitted.
func (s *Store) ComputeResults(ctx context.Context, surveyID string) (*models.TallyResult, error) {
	sv, err := s.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	counts, err := s.voteCounts(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	names, err := s.candidateNames(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	totalVotes := 0
	for _, n := range counts {
		totalVotes += n
	}

	results := make([]models.CandidateResult, 0, len(sv.Candidates))
	for _, candidateID := range sv.Candidates {
		votes := counts[candidateID]
		name, ok := names[candidateID]
		if !ok {
			name = models.UnknownCandidateName
		}
		results = append(results, models.CandidateResult{
			CandidateID:   candidateID,
			CandidateName: name,
			Votes:         votes,
			Percentage:    percentage(votes, totalVotes),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Votes > results[j].Votes
	})

	return &models.TallyResult{
		SurveyID:   sv.ID,
		SurveyName: sv.Name,
		TotalVotes: totalVotes,
		Results:    results,
	}, nil
}

// percentage = votes / total * 100, rounded to 2 decimals. 0 when total is 0.
func percentage(votes, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(votes)/float64(total)*100*100) / 100
}

func (s *Store) voteCounts(ctx context.Context, surveyID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate_id, COUNT(*) FROM vote
		WHERE survey_id = $1 GROUP BY candidate_id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var candidateID string
		var n int
		if err := rows.Scan(&candidateID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[candidateID] = n
	}
	return counts, rows.Err()
}

func (s *Store) candidateNames(ctx context.Context, surveyID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sc.candidate_id, c.name
		FROM survey_candidate sc
		LEFT JOIN candidate c ON c.id = sc.candidate_id
		WHERE sc.survey_id = $1
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var candidateID string
		var name sql.NullString
		if err := rows.Scan(&candidateID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan candidate name: %w", err)
		}
		if name.Valid {
			names[candidateID] = name.String
		}
	}
	return names, rows.Err()
}
