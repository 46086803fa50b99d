// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package wallet adapts the external payment network behind a small
interface.

The payment coordinator only sees Wallet: a balance read and an
irreversible Pay that returns a transaction reference. RPCWallet is the
production implementation, relaying the vote fee through a server-held
account on a Solana RPC node with a borsh-encoded receipt memo carrying
the voter address. Tests substitute in-memory fakes.

Correctness of the transfer itself (finality, fees, signature rules) is
the chain's concern; callers treat the returned reference as opaque.
*/
package wallet
