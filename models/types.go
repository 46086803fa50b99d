// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session kinds
const (
	SessionRegister     = "register"
	SessionAuthenticate = "authenticate"
)

// UnknownCandidateName is reported for candidate ids that appear in a
// survey's catalog but have no candidate record.
const UnknownCandidateName = "Unknown"

// Request types

type RegisterOptionsRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type RegisterVerifyRequest struct {
	SessionID    string `json:"sessionId"`
	CredentialID string `json:"credentialId"`
	PublicKey    string `json:"publicKey"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
}

type AuthenticateVerifyRequest struct {
	SessionID    string `json:"sessionId"`
	CredentialID string `json:"credentialId"`
	Username     string `json:"username"`
}

type CreateUserRequest struct {
	Username      string `json:"username"`
	DisplayName   string `json:"displayName"`
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress"`
}

type CreateCandidateRequest struct {
	Name        string `json:"name"`
	Party       string `json:"party"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type CreateSurveyRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Candidates  []string   `json:"candidates"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
	VoteFee     *uint64    `json:"voteFee,omitempty"`
	CreatedBy   string     `json:"createdBy"`
}

type CastVoteRequest struct {
	CandidateID  string `json:"candidateId"`
	VoterAddress string `json:"voterAddress"`
}

type CheckVoteRequest struct {
	VoterAddress string `json:"voterAddress"`
}

// Response types

type RegisterOptionsResponse struct {
	SessionID   string `json:"sessionId"`
	Challenge   string `json:"challenge"` // base64url, no padding
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type AuthenticateOptionsResponse struct {
	SessionID string `json:"sessionId"`
	Challenge string `json:"challenge"`
}

type RegisterVerifyResponse struct {
	Success     bool   `json:"success"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Message     string `json:"message"`
}

type AuthenticateVerifyResponse struct {
	Success     bool   `json:"success"`
	AuthToken   string `json:"authToken"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Message     string `json:"message"`
}

type CastVoteResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TotalVotes int    `json:"totalVotes"`
	TxRef      string `json:"txRef,omitempty"`
}

// VoteFailureResponse is returned when the payment settled but the ledger
// write did not. The txRef must reach the caller for manual reconciliation.
type VoteFailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	TxRef   string `json:"txRef,omitempty"`
}

type CheckVoteResponse struct {
	HasVoted bool `json:"hasVoted"`
}

// Domain types

type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"displayName"`
	Email         string    `json:"email,omitempty"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Credential struct {
	UserID       string    `json:"userId"`
	CredentialID string    `json:"credentialId"`
	PublicKey    string    `json:"-"` // Never expose in JSON
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	CreatedAt    time.Time `json:"created_at"`
}

type Candidate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Party       string    `json:"party,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Survey struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Candidates  []string   `json:"candidates"` // ordered catalog
	IsActive    bool       `json:"isActive"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	VoteFee     uint64     `json:"voteFee"` // lamports, 0 means server default
	CreatedBy   string     `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Vote struct {
	SurveyID     string    `json:"surveyId"`
	CandidateID  string    `json:"candidateId"`
	VoterAddress string    `json:"voterAddress"`
	TxRef        string    `json:"txRef,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Tally types (derived, never stored)

type CandidateResult struct {
	CandidateID   string  `json:"candidateId"`
	CandidateName string  `json:"candidateName"`
	Votes         int     `json:"votes"`
	Percentage    float64 `json:"percentage"`
}

type TallyResult struct {
	SurveyID   string            `json:"surveyId"`
	SurveyName string            `json:"surveyName"`
	TotalVotes int               `json:"totalVotes"`
	Results    []CandidateResult `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
