// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballotpass API server.

Ballotpass is a survey voting service with passkey-style challenge/response
authentication and a fee-bearing vote pipeline: every vote pays a small fee
on an external payment network before it is recorded in the ledger.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... RELAY_KEY=... ADDRESS_SALT=... go run main.go

Or with flags:

	go run main.go -p 3000 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - RELAY_KEY: base58 private key of the fee relay account (env only)
  - ADDRESS_SALT (-addr-salt): Secret for privacy-safe address hashing in logs

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - RPC_URL (-rpc): Payment network RPC endpoint
  - PAYMENT_DESTINATION (-dest): Vote fee destination address
  - VOTE_FEE (-fee): Default vote fee in lamports
  - RESERVE (-reserve): Balance the voter must retain beyond the fee

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (passkey, surveys, users, candidates)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Challenge and token generation
  - session: One-shot challenge sessions with TTL sweeping
  - store: SQL persistence and tally computation
  - payment: Pay-then-record vote saga
  - wallet: Payment network collaborator
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
