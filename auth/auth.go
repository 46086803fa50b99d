// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// ChallengeSize is the byte length of a passkey ceremony challenge.
const ChallengeSize = 32

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateChallenge creates a cryptographically random 32-byte challenge
// for a registration or authentication ceremony.
func GenerateChallenge() ([]byte, error) {
	b := make([]byte, ChallengeSize)
	_, err := rand.Read(b)
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenge: %w", err)
	}
	return b, nil
}

// EncodeChallenge renders a challenge for the HTTP boundary.
// URL-safe base64 without padding.
func EncodeChallenge(challenge []byte) string {
	return base64.RawURLEncoding.EncodeToString(challenge)
}

// DecodeChallenge parses a boundary-encoded challenge back to raw bytes.
func DecodeChallenge(encoded string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid challenge encoding: %w", err)
	}
	return b, nil
}

// GenerateAuthToken creates a random bearer token issued after a
// successful authentication ceremony. 32 bytes (256 bits), hex encoded.
func GenerateAuthToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate auth token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashAddress creates a one-way hash of a wallet address for privacy-safe
// logging. Includes salt to prevent rainbow table attacks.
func HashAddress(addr, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(addr))
	sum := h.Sum(nil)
	// First 8 bytes (16 hex chars) - enough for correlation
	return hex.EncodeToString(sum[:8])
}
