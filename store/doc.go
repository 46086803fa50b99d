// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer for the Ballotpass server.

# Components

  - Credential store: RegisterCredential / FindCredential, keyed by the
    full (username, credential_id) pair
  - Vote ledger: CastVote / HasVoted / CountVotes, append-only
  - Tally engine: ComputeResults, a pure derivation over the ledger
  - Users, candidates, surveys: CRUD used by the administrative endpoints

# Concurrency

The store never does check-then-insert for uniqueness-sensitive writes.
The schema's UNIQUE constraints are the arbiter:

  - credential PRIMARY KEY (username, credential_id) → ErrDuplicateCredential
  - vote UNIQUE (survey_id, voter_address) → ErrAlreadyVoted

A violation from either supported driver (lib/pq code 23505, SQLite
"UNIQUE constraint failed") is translated into the domain error, so
concurrent duplicates degrade into a well-typed conflict rather than a
500-class failure.
*/
package store
