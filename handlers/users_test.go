// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/ballotpass/server/models"
	"github.com/ballotpass/server/store"
	"github.com/ballotpass/server/testutil"
)

func TestUserCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewUserHandler(store.New(db))

	// Create
	w := httptest.NewRecorder()
	handler.Create(w, testutil.MakeRequest("POST", "/api/users",
		models.CreateUserRequest{Username: "alice", DisplayName: "Alice", Email: "alice@example.com"}, nil))
	testutil.AssertStatus(t, w, 201)

	var user models.User
	testutil.AssertJSON(t, w, &user)
	if user.ID == "" {
		t.Fatal("Expected a user id")
	}

	// Get
	req := testutil.MakeRequest("GET", "/api/users/"+user.ID, nil, nil)
	req.SetPathValue("id", user.ID)
	w = httptest.NewRecorder()
	handler.Get(w, req)
	testutil.AssertStatus(t, w, 200)

	// Update merges fields
	req = testutil.MakeRequest("PUT", "/api/users/"+user.ID,
		models.CreateUserRequest{DisplayName: "Alice B."}, nil)
	req.SetPathValue("id", user.ID)
	w = httptest.NewRecorder()
	handler.Update(w, req)
	testutil.AssertStatus(t, w, 200)

	var updated models.User
	testutil.AssertJSON(t, w, &updated)
	if updated.DisplayName != "Alice B." {
		t.Errorf("Expected updated display name, got %s", updated.DisplayName)
	}
	if updated.Email != "alice@example.com" {
		t.Errorf("Omitted fields must keep stored values, got email %q", updated.Email)
	}

	// Delete
	req = testutil.MakeRequest("DELETE", "/api/users/"+user.ID, nil, nil)
	req.SetPathValue("id", user.ID)
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	testutil.AssertStatus(t, w, 204)

	req = testutil.MakeRequest("GET", "/api/users/"+user.ID, nil, nil)
	req.SetPathValue("id", user.ID)
	w = httptest.NewRecorder()
	handler.Get(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestCreateUserValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewUserHandler(store.New(db))

	w := httptest.NewRecorder()
	handler.Create(w, testutil.MakeRequest("POST", "/api/users",
		models.CreateUserRequest{DisplayName: "No Username"}, nil))
	testutil.AssertStatus(t, w, 400)
}

func TestCandidateCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewCandidateHandler(store.New(db))

	w := httptest.NewRecorder()
	handler.Create(w, testutil.MakeRequest("POST", "/api/candidates",
		models.CreateCandidateRequest{Name: "Alice", Party: "Blue"}, nil))
	testutil.AssertStatus(t, w, 201)

	var candidate models.Candidate
	testutil.AssertJSON(t, w, &candidate)
	if candidate.ID == "" {
		t.Fatal("Expected a candidate id")
	}

	req := testutil.MakeRequest("PUT", "/api/candidates/"+candidate.ID,
		models.CreateCandidateRequest{Party: "Green"}, nil)
	req.SetPathValue("id", candidate.ID)
	w = httptest.NewRecorder()
	handler.Update(w, req)
	testutil.AssertStatus(t, w, 200)

	var updated models.Candidate
	testutil.AssertJSON(t, w, &updated)
	if updated.Party != "Green" {
		t.Errorf("Expected updated party, got %s", updated.Party)
	}
	if updated.Name != "Alice" {
		t.Errorf("Omitted fields must keep stored values, got name %q", updated.Name)
	}

	req = testutil.MakeRequest("DELETE", "/api/candidates/"+candidate.ID, nil, nil)
	req.SetPathValue("id", candidate.ID)
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	testutil.AssertStatus(t, w, 204)

	req = testutil.MakeRequest("GET", "/api/candidates/"+candidate.ID, nil, nil)
	req.SetPathValue("id", candidate.ID)
	w = httptest.NewRecorder()
	handler.Get(w, req)
	testutil.AssertStatus(t, w, 404)
}
