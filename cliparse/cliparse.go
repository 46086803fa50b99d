package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Payment network
	RPCURL             string
	PaymentDestination string
	VoteFee            uint64 // lamports; surveys may override per-survey
	Reserve            uint64 // lamports the voter must retain beyond the fee
	RelayKey           string // base58 private key of the fee relay account

	// Secrets
	AddressSalt string // salt for privacy-safe address hashing in logs
}

const (
	defaultPort        = 3000
	defaultRPCURL      = "https://api.devnet.solana.com"
	defaultDestination = "GW1r76tkZDNpdKf7BD7ap1EtPvnQb592apWuaKWCyckd"
	defaultVoteFee     = 100_000_000   // 0.1 in whole units
	defaultReserve     = 1_000_000_000 // 1 whole unit kept back
)

// ParseFlags validates flags and applies env fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ballotpass", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.RPCURL, "rpc", "", "Payment network RPC URL")
	fs.StringVar(&cfg.PaymentDestination, "dest", "", "Vote fee destination address")
	fs.Uint64Var(&cfg.VoteFee, "fee", 0, "Default vote fee in lamports")
	fs.Uint64Var(&cfg.Reserve, "reserve", 0, "Balance reserve in lamports")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AddressSalt, "addr-salt", "", "Address hashing salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.RPCURL == "" {
		cfg.RPCURL = os.Getenv("RPC_URL")
		if cfg.RPCURL == "" {
			cfg.RPCURL = defaultRPCURL
		}
	}

	if cfg.PaymentDestination == "" {
		cfg.PaymentDestination = os.Getenv("PAYMENT_DESTINATION")
		if cfg.PaymentDestination == "" {
			cfg.PaymentDestination = defaultDestination
		}
	}

	if cfg.VoteFee == 0 {
		if feeStr := os.Getenv("VOTE_FEE"); feeStr != "" {
			fee, err := strconv.ParseUint(feeStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid VOTE_FEE env variable")
			}
			cfg.VoteFee = fee
		} else {
			cfg.VoteFee = defaultVoteFee
		}
	}

	if cfg.Reserve == 0 {
		if resStr := os.Getenv("RESERVE"); resStr != "" {
			res, err := strconv.ParseUint(resStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid RESERVE env variable")
			}
			cfg.Reserve = res
		} else {
			cfg.Reserve = defaultReserve
		}
	}

	// Relay key is a secret: env only, never a flag
	cfg.RelayKey = os.Getenv("RELAY_KEY")
	if cfg.RelayKey == "" {
		return Config{}, errors.New("RELAY_KEY required")
	}

	if cfg.AddressSalt == "" {
		cfg.AddressSalt = os.Getenv("ADDRESS_SALT")
	}
	if cfg.AddressSalt == "" {
		return Config{}, errors.New("ADDRESS_SALT required")
	}

	return cfg, nil
}
