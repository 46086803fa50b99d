// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/ballotpass/server/models"
	"github.com/ballotpass/server/payment"
	"github.com/ballotpass/server/session"
	"github.com/ballotpass/server/store"
	"github.com/ballotpass/server/testutil"
)

// TestFullVotingWorkflow tests the complete end-to-end workflow:
// 1. Register a passkey
// 2. Authenticate with it
// 3. Create candidates and a survey
// 4. Cast paid votes from two wallets
// 5. Verify the tally
// 6. Deactivate the survey and confirm votes are rejected
func TestFullVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := store.New(db)
	cfg := testutil.GetTestConfig()
	sessions := session.NewManager(0)
	wallet := &stubWallet{balance: 2_000_000_000}
	coordinator := payment.NewCoordinator(wallet, st, cfg.PaymentDestination, cfg.VoteFee, cfg.Reserve)

	passkeyHandler := NewPasskeyHandler(sessions, st)
	surveyHandler := NewSurveyHandler(st, coordinator, cfg)
	candidateHandler := NewCandidateHandler(st)

	// Step 1: register a passkey
	w := httptest.NewRecorder()
	passkeyHandler.RegisterOptions(w, testutil.MakeRequest("POST", "/api/passkey/register/options",
		models.RegisterOptionsRequest{Username: "organizer", DisplayName: "Organizer"}, nil))
	testutil.AssertStatus(t, w, 200)

	var regOpts models.RegisterOptionsResponse
	testutil.AssertJSON(t, w, &regOpts)

	w = httptest.NewRecorder()
	passkeyHandler.RegisterVerify(w, testutil.MakeRequest("POST", "/api/passkey/register/verify",
		models.RegisterVerifyRequest{
			SessionID:    regOpts.SessionID,
			CredentialID: "organizer-cred",
			PublicKey:    "organizer-pk",
			Username:     "organizer",
			DisplayName:  "Organizer",
		}, nil))
	testutil.AssertStatus(t, w, 200)
	t.Log("Step 1 - Passkey registered")

	// Step 2: authenticate
	w = httptest.NewRecorder()
	passkeyHandler.AuthenticateOptions(w, testutil.MakeRequest("POST", "/api/passkey/authenticate/options", nil, nil))
	var authOpts models.AuthenticateOptionsResponse
	testutil.AssertJSON(t, w, &authOpts)

	w = httptest.NewRecorder()
	passkeyHandler.AuthenticateVerify(w, testutil.MakeRequest("POST", "/api/passkey/authenticate/verify",
		models.AuthenticateVerifyRequest{
			SessionID:    authOpts.SessionID,
			CredentialID: "organizer-cred",
			Username:     "organizer",
		}, nil))
	testutil.AssertStatus(t, w, 200)

	var authResp models.AuthenticateVerifyResponse
	testutil.AssertJSON(t, w, &authResp)
	if authResp.AuthToken == "" {
		t.Fatal("Step 2 - Missing auth token")
	}
	t.Log("Step 2 - Authenticated")

	// Step 3: create candidates and a survey
	createCandidate := func(name string) string {
		w := httptest.NewRecorder()
		candidateHandler.Create(w, testutil.MakeRequest("POST", "/api/candidates",
			models.CreateCandidateRequest{Name: name}, nil))
		testutil.AssertStatus(t, w, 201)

		var c models.Candidate
		testutil.AssertJSON(t, w, &c)
		return c.ID
	}
	candA := createCandidate("Alice")
	candB := createCandidate("Bob")

	w = httptest.NewRecorder()
	surveyHandler.Create(w, testutil.MakeRequest("POST", "/api/surveys",
		models.CreateSurveyRequest{
			Name:       "Integration Survey",
			Candidates: []string{candA, candB},
			CreatedBy:  "organizer",
		}, nil))
	testutil.AssertStatus(t, w, 201)

	var sv models.Survey
	testutil.AssertJSON(t, w, &sv)
	t.Logf("Step 3 - Created survey %s", sv.ID)

	// Step 4: two wallets vote
	w = castVote(surveyHandler, sv.ID, candA, voterAddr1)
	testutil.AssertStatus(t, w, 200)

	w = castVote(surveyHandler, sv.ID, candA, voterAddr2)
	testutil.AssertStatus(t, w, 200)

	var voteResp models.CastVoteResponse
	testutil.AssertJSON(t, w, &voteResp)
	if voteResp.TotalVotes != 2 {
		t.Errorf("Step 4 - Expected 2 total votes, got %d", voteResp.TotalVotes)
	}
	if wallet.payCalls.Load() != 2 {
		t.Errorf("Step 4 - Expected 2 payments, got %d", wallet.payCalls.Load())
	}

	// Step 5: verify the tally
	req := testutil.MakeRequest("GET", "/api/surveys/"+sv.ID+"/results", nil, nil)
	req.SetPathValue("id", sv.ID)
	w = httptest.NewRecorder()
	surveyHandler.Results(w, req)
	testutil.AssertStatus(t, w, 200)

	var tally models.TallyResult
	testutil.AssertJSON(t, w, &tally)

	if tally.TotalVotes != 2 {
		t.Errorf("Step 5 - Expected 2 total votes, got %d", tally.TotalVotes)
	}
	if tally.Results[0].CandidateID != candA || tally.Results[0].Percentage != 100.0 {
		t.Errorf("Step 5 - Unexpected leader: %+v", tally.Results[0])
	}
	t.Log("Step 5 - Tally verified")

	// Step 6: deactivate, further votes rejected
	inactive := false
	req = testutil.MakeRequest("PUT", "/api/surveys/"+sv.ID,
		models.CreateSurveyRequest{IsActive: &inactive}, nil)
	req.SetPathValue("id", sv.ID)
	w = httptest.NewRecorder()
	surveyHandler.Update(w, req)
	testutil.AssertStatus(t, w, 200)

	w = castVote(surveyHandler, sv.ID, candB, voterAddr3)
	testutil.AssertStatus(t, w, 400)

	// The rejected vote paid nothing
	if wallet.payCalls.Load() != 2 {
		t.Errorf("Step 6 - Expected payments to stay at 2, got %d", wallet.payCalls.Load())
	}
}
