// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package middleware provides HTTP plumbing shared by all handlers:
// request logging, JSON response/error helpers, body parsing, and CORS.
package middleware
