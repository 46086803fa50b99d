// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package payment coordinates the fee-then-record vote saga.

The saga spans two trust domains: the external payment network (the fee
transfer, irreversible) and the local vote ledger. Ordering is fixed —
pay first, record second — so a partial failure is always "paid but not
recorded", never a free vote.

Outcomes are typed rather than boolean:

  - StageNone: nothing durable happened; the caller may retry
  - StagePaid: money moved but no vote exists; *PostPaymentError carries
    the transaction reference for manual reconciliation
  - StageRecorded: both steps completed

The coordinator never retries or reverses a payment on its own. Its only
replay defense is the HasVoted pre-check, which makes a retried request
after a mid-payment disconnect fail cheaply instead of paying twice.
*/
package payment
