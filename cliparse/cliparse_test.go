package cliparse

import "testing"

func baseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("RPC_URL", "")
	t.Setenv("PAYMENT_DESTINATION", "")
	t.Setenv("VOTE_FEE", "")
	t.Setenv("RESERVE", "")
	t.Setenv("RELAY_KEY", "test-relay-key")
	t.Setenv("ADDRESS_SALT", "test-salt")
}

func TestParseFlagsDefaults(t *testing.T) {
	baseEnv(t)

	cfg, err := ParseFlags([]string{"-d", "file:ballotpass.db"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Expected default port 3000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.VoteFee != 100_000_000 {
		t.Errorf("Expected default fee, got %d", cfg.VoteFee)
	}
	if cfg.Reserve != 1_000_000_000 {
		t.Errorf("Expected default reserve, got %d", cfg.Reserve)
	}
	if cfg.RPCURL == "" || cfg.PaymentDestination == "" {
		t.Error("Expected RPC URL and destination defaults")
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	baseEnv(t)

	cfg, err := ParseFlags([]string{
		"-p", "8080",
		"-d", "postgres://localhost/ballotpass",
		"-t", "postgres",
		"-fee", "5000",
		"-reserve", "9000",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected postgres, got %q", cfg.DatabaseType)
	}
	if cfg.VoteFee != 5000 || cfg.Reserve != 9000 {
		t.Errorf("Fee/reserve overrides not applied: %d/%d", cfg.VoteFee, cfg.Reserve)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	baseEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("VOTE_FEE", "123")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 4000 {
		t.Errorf("Expected env port 4000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://env/db" {
		t.Errorf("Expected env database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.VoteFee != 123 {
		t.Errorf("Expected env fee 123, got %d", cfg.VoteFee)
	}
}

func TestParseFlagsValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
		args  []string
	}{
		{
			name:  "missing database URL",
			setup: func(t *testing.T) { baseEnv(t) },
			args:  nil,
		},
		{
			name: "invalid database type",
			setup: func(t *testing.T) {
				baseEnv(t)
			},
			args: []string{"-d", "x", "-t", "oracle"},
		},
		{
			name: "missing relay key",
			setup: func(t *testing.T) {
				baseEnv(t)
				t.Setenv("RELAY_KEY", "")
			},
			args: []string{"-d", "x"},
		},
		{
			name: "missing address salt",
			setup: func(t *testing.T) {
				baseEnv(t)
				t.Setenv("ADDRESS_SALT", "")
			},
			args: []string{"-d", "x"},
		},
		{
			name: "invalid PORT env",
			setup: func(t *testing.T) {
				baseEnv(t)
				t.Setenv("PORT", "not-a-number")
			},
			args: []string{"-d", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
