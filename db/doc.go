// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the SQL schema for the Ballotpass server.

The schema is written to run unmodified on PostgreSQL (lib/pq) and SQLite
(modernc.org/sqlite): no database-specific defaults, timestamps set by the
application, uniqueness enforced with plain UNIQUE constraints.
*/
package db
