// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session manages pending passkey ceremony sessions.

A session is a short-lived record binding a server-issued random challenge
to exactly one registration or authentication attempt. Sessions live in
process memory behind a single Manager:

	mgr := session.NewManager(0) // default 600s TTL
	mgr.StartSweeper(0)          // default 600s purge interval
	defer mgr.Stop()

	s, err := mgr.CreateChallenge(models.SessionRegister, "alice", "Alice")
	...
	s, err = mgr.Consume(s.ID) // exactly once; replays fail

Consume removes the entry before returning it, so an id can never be
replayed: the second call observes ErrSessionNotFound. TTL expiry is
checked at consume time as well as by the background sweeper, so a stale
session fails regardless of sweep timing.
*/
package session
