// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/near/borsh-go"
)

// Wallet is the external payment collaborator consumed by the payment
// coordinator. Pay is irreversible: once a transfer settles there is no
// rollback, only the returned reference for reconciliation.
type Wallet interface {
	Balance(ctx context.Context, addr string) (uint64, error)
	Pay(ctx context.Context, voterAddr, destination string, lamports uint64) (txRef string, err error)
}

// ValidateAddress checks that addr is a well-formed base58 public key.
func ValidateAddress(addr string) error {
	if _, err := solana.PublicKeyFromBase58(addr); err != nil {
		return fmt.Errorf("invalid wallet address: %w", err)
	}
	return nil
}

// receipt is the borsh-encoded memo attached to each fee transfer so the
// payment can be traced back to its vote during reconciliation.
type receipt struct {
	Voter    string
	Lamports uint64
}

var receiptDiscriminator = []byte{11, 24, 203, 66, 90, 7, 150, 42}

// RPCWallet relays vote-fee transfers through a server-held fee account
// and reads voter balances from a Solana RPC node.
type RPCWallet struct {
	client *rpc.Client
	signer solana.PrivateKey
}

func NewRPCWallet(rpcURL string, signer solana.PrivateKey) *RPCWallet {
	return &RPCWallet{
		client: rpc.New(rpcURL),
		signer: signer,
	}
}

// Balance returns the voter's balance in lamports.
func (w *RPCWallet) Balance(ctx context.Context, addr string) (uint64, error) {
	pubKey, err := solana.PublicKeyFromBase58(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid wallet address: %w", err)
	}

	out, err := w.client.GetBalance(ctx, pubKey, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch balance: %w", err)
	}

	return out.Value, nil
}

// Pay submits the fee transfer and returns the transaction signature.
// The voter address travels in the receipt memo; the relay account is the
// fee payer and transfer source on chain.
func (w *RPCWallet) Pay(ctx context.Context, voterAddr, destination string, lamports uint64) (string, error) {
	destKey, err := solana.PublicKeyFromBase58(destination)
	if err != nil {
		return "", fmt.Errorf("invalid destination address: %w", err)
	}

	relayKey := w.signer.PublicKey()

	transfer := system.NewTransferInstruction(lamports, relayKey, destKey).Build()

	receiptData, err := borsh.Serialize(receipt{Voter: voterAddr, Lamports: lamports})
	if err != nil {
		return "", fmt.Errorf("failed to serialize receipt: %w", err)
	}

	memo := solana.NewInstruction(
		solana.MemoProgramID,
		solana.AccountMetaSlice{
			{PublicKey: relayKey, IsSigner: true, IsWritable: false},
		},
		append(receiptDiscriminator, receiptData...),
	)

	recent, err := w.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return "", fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{transfer, memo},
		recent.Value.Blockhash,
		solana.TransactionPayer(relayKey),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if relayKey.Equals(key) {
			return &w.signer
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := w.client.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	slog.Info("fee transfer sent", "signature", sig.String(), "lamports", lamports)

	return sig.String(), nil
}
