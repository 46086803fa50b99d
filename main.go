// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/ballotpass/server/cliparse"
	"github.com/ballotpass/server/db"
	"github.com/ballotpass/server/middleware"
	"github.com/ballotpass/server/payment"
	"github.com/ballotpass/server/router"
	"github.com/ballotpass/server/session"
	"github.com/ballotpass/server/store"
	"github.com/ballotpass/server/wallet"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}

	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	st := store.New(dbConn)

	sessions := session.NewManager(session.DefaultTTL)
	sessions.StartSweeper(session.DefaultSweepInterval)
	defer sessions.Stop()

	relayKey, err := solana.PrivateKeyFromBase58(cfg.RelayKey)
	if err != nil {
		slog.Error("invalid relay key", "error", err)
		os.Exit(1)
	}
	rpcWallet := wallet.NewRPCWallet(cfg.RPCURL, relayKey)

	coordinator := payment.NewCoordinator(rpcWallet, st, cfg.PaymentDestination, cfg.VoteFee, cfg.Reserve)

	mux := router.NewRouter(st, sessions, coordinator, cfg)

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
