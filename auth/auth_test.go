// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"bytes"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("Expected 32 hex chars, got %d", len(id))
	}

	id2, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id == id2 {
		t.Error("Two generated IDs collided")
	}
}

func TestGenerateChallenge(t *testing.T) {
	c, err := GenerateChallenge()
	if err != nil {
		t.Fatalf("GenerateChallenge failed: %v", err)
	}
	if len(c) != ChallengeSize {
		t.Errorf("Expected %d bytes, got %d", ChallengeSize, len(c))
	}

	c2, err := GenerateChallenge()
	if err != nil {
		t.Fatalf("GenerateChallenge failed: %v", err)
	}
	if bytes.Equal(c, c2) {
		t.Error("Two challenges were identical")
	}
}

func TestChallengeEncodingRoundTrip(t *testing.T) {
	c, err := GenerateChallenge()
	if err != nil {
		t.Fatalf("GenerateChallenge failed: %v", err)
	}

	encoded := EncodeChallenge(c)
	if len(encoded) != 43 { // 32 bytes base64url without padding
		t.Errorf("Expected 43-char encoding, got %d", len(encoded))
	}
	for _, r := range encoded {
		if r == '=' || r == '+' || r == '/' {
			t.Errorf("Encoding contains non-URL-safe character %q", r)
		}
	}

	decoded, err := DecodeChallenge(encoded)
	if err != nil {
		t.Fatalf("DecodeChallenge failed: %v", err)
	}
	if !bytes.Equal(c, decoded) {
		t.Error("Round-tripped challenge does not match original")
	}
}

func TestDecodeChallengeRejectsGarbage(t *testing.T) {
	if _, err := DecodeChallenge("not!valid!base64!"); err == nil {
		t.Error("Expected error for invalid encoding")
	}
}

func TestGenerateAuthToken(t *testing.T) {
	tok, err := GenerateAuthToken()
	if err != nil {
		t.Fatalf("GenerateAuthToken failed: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(tok))
	}

	tok2, err := GenerateAuthToken()
	if err != nil {
		t.Fatalf("GenerateAuthToken failed: %v", err)
	}
	if tok == tok2 {
		t.Error("Two auth tokens collided")
	}
}

func TestHashAddress(t *testing.T) {
	h1 := HashAddress("GABC123", "salt-a")
	h2 := HashAddress("GABC123", "salt-a")
	h3 := HashAddress("GABC123", "salt-b")
	h4 := HashAddress("GXYZ789", "salt-a")

	if h1 != h2 {
		t.Error("Same address and salt should produce the same hash")
	}
	if h1 == h3 {
		t.Error("Different salts should produce different hashes")
	}
	if h1 == h4 {
		t.Error("Different addresses should produce different hashes")
	}
	if len(h1) != 16 {
		t.Errorf("Expected 16 hex chars, got %d", len(h1))
	}
}
