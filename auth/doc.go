// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token and challenge generation utilities.

# Challenges

Passkey ceremony challenges are random 32-byte values:

	challenge, err := auth.GenerateChallenge()
	encoded := auth.EncodeChallenge(challenge) // base64url, no padding

The raw bytes live only inside a pending session; the encoded form is what
crosses the HTTP boundary.

# Auth Tokens

Bearer tokens issued after a successful authentication ceremony:

	token, err := auth.GenerateAuthToken() // 64 hex characters

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16) // 32 hex characters

# Address Hashing

For privacy-preserving log correlation of wallet addresses:

	hash := auth.HashAddress(addr, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
