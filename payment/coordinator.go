// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ballotpass/server/models"
	"github.com/ballotpass/server/store"
	"github.com/ballotpass/server/wallet"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPaymentFailed       = errors.New("payment failed")
)

// PostPaymentError reports the asymmetric failure of the vote saga: the
// fee transfer settled but the ledger write did not. The payment cannot be
// reversed; TxRef must reach a human for manual reconciliation.
type PostPaymentError struct {
	TxRef string
	Cause error
}

func (e *PostPaymentError) Error() string {
	return fmt.Sprintf("payment %s succeeded but vote was not recorded: %v", e.TxRef, e.Cause)
}

func (e *PostPaymentError) Unwrap() error {
	return e.Cause
}

// Stage records how far the vote saga progressed. Partial failure always
// manifests as "paid but not recorded", never the reverse.
type Stage int

const (
	StageNone     Stage = iota // nothing durable happened; safe to retry
	StagePaid                  // fee transferred, vote not recorded
	StageRecorded              // fee transferred and vote recorded
)

func (s Stage) String() string {
	switch s {
	case StagePaid:
		return "paid"
	case StageRecorded:
		return "recorded"
	default:
		return "none"
	}
}

// Outcome is the typed result of a vote attempt.
type Outcome struct {
	Stage      Stage
	TxRef      string
	TotalVotes int
}

// Ledger is the slice of the store the coordinator depends on.
type Ledger interface {
	GetSurvey(ctx context.Context, id string) (models.Survey, error)
	HasVoted(ctx context.Context, surveyID, voterAddress string) (bool, error)
	CastVote(ctx context.Context, v models.Vote) (int, error)
}

// Coordinator sequences the irreversible external fee transfer with the
// local ledger write. It never retries a payment and never attempts to
// reverse one.
type Coordinator struct {
	wallet      wallet.Wallet
	ledger      Ledger
	destination string
	defaultFee  uint64 // lamports
	reserve     uint64 // lamports the voter must retain beyond the fee
}

func NewCoordinator(w wallet.Wallet, ledger Ledger, destination string, defaultFee, reserve uint64) *Coordinator {
	return &Coordinator{
		wallet:      w,
		ledger:      ledger,
		destination: destination,
		defaultFee:  defaultFee,
		reserve:     reserve,
	}
}

// Vote runs the two-step saga: pay the vote fee, then record the vote.
//
// Preconditions (survey live, candidate in catalog, voter fresh, balance
// covers fee plus reserve) are checked before any money moves, so every
// failure up to and including the transfer itself leaves nothing durable
// behind and is safe to retry. After a successful transfer a ledger
// failure is returned as *PostPaymentError carrying the transaction
// reference; the caller owes the user that reference.
func (c *Coordinator) Vote(ctx context.Context, surveyID, candidateID, voterAddress string) (Outcome, error) {
	// Restart-safe: a caller that disconnected mid-payment and retries must
	// see AlreadyVoted here instead of paying twice.
	voted, err := c.ledger.HasVoted(ctx, surveyID, voterAddress)
	if err != nil {
		return Outcome{}, err
	}
	if voted {
		return Outcome{}, store.ErrAlreadyVoted
	}

	sv, err := c.ledger.GetSurvey(ctx, surveyID)
	if err != nil {
		return Outcome{}, err
	}
	if !sv.IsActive {
		return Outcome{}, store.ErrSurveyInactive
	}
	if !slices.Contains(sv.Candidates, candidateID) {
		return Outcome{}, store.ErrCandidateNotInSurvey
	}

	fee := sv.VoteFee
	if fee == 0 {
		fee = c.defaultFee
	}

	balance, err := c.wallet.Balance(ctx, voterAddress)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if balance < fee+c.reserve {
		return Outcome{}, fmt.Errorf("%w: have %d lamports, need %d (fee %d + reserve %d)",
			ErrInsufficientBalance, balance, fee+c.reserve, fee, c.reserve)
	}

	txRef, err := c.wallet.Pay(ctx, voterAddress, c.destination, fee)
	if err != nil {
		// No transfer settled and no ledger write happened; retryable.
		return Outcome{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	total, err := c.ledger.CastVote(ctx, models.Vote{
		SurveyID:     surveyID,
		CandidateID:  candidateID,
		VoterAddress: voterAddress,
		TxRef:        txRef,
	})
	if err != nil {
		slog.Error("vote paid but not recorded, manual reconciliation required",
			"survey_id", surveyID, "tx_ref", txRef, "error", err)
		return Outcome{Stage: StagePaid, TxRef: txRef}, &PostPaymentError{TxRef: txRef, Cause: err}
	}

	return Outcome{Stage: StageRecorded, TxRef: txRef, TotalVotes: total}, nil
}
