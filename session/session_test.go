package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ballotpass/server/auth"
	"github.com/ballotpass/server/models"
)

func TestCreateChallenge(t *testing.T) {
	m := NewManager(0)
	defer m.Stop()

	s, err := m.CreateChallenge(models.SessionRegister, "alice", "Alice A")
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}

	if len(s.Challenge) != auth.ChallengeSize {
		t.Errorf("Expected %d-byte challenge, got %d", auth.ChallengeSize, len(s.Challenge))
	}
	if s.ID == "" {
		t.Error("Expected non-empty session id")
	}
	if s.UserID == "" {
		t.Error("Expected non-empty user id")
	}
	if s.Kind != models.SessionRegister {
		t.Errorf("Expected kind %q, got %q", models.SessionRegister, s.Kind)
	}
	if !s.ExpiresAt.After(s.CreatedAt) {
		t.Error("Expected expiry after creation time")
	}

	// Challenges must be unique across sessions
	s2, err := m.CreateChallenge(models.SessionRegister, "bob", "Bob B")
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}
	if string(s.Challenge) == string(s2.Challenge) {
		t.Error("Two sessions received the same challenge")
	}
	if s.ID == s2.ID {
		t.Error("Two sessions received the same id")
	}
}

func TestConsumeExactlyOnce(t *testing.T) {
	m := NewManager(0)
	defer m.Stop()

	s, err := m.CreateChallenge(models.SessionAuthenticate, "", "")
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}

	got, err := m.Consume(s.ID)
	if err != nil {
		t.Fatalf("First consume failed: %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("Consumed wrong session: %s", got.ID)
	}

	// Second consume of the same id must always fail with not-found
	if _, err := m.Consume(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on replay, got %v", err)
	}
}

func TestConsumeUnknownSession(t *testing.T) {
	m := NewManager(0)
	defer m.Stop()

	if _, err := m.Consume("no-such-session"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestConsumeExpiredSession(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	defer m.Stop()

	s, err := m.CreateChallenge(models.SessionRegister, "alice", "Alice A")
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, err := m.Consume(s.ID); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Expected ErrSessionExpired, got %v", err)
	}

	// The expired entry is deleted, not left behind
	if _, err := m.Consume(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after expiry consume, got %v", err)
	}
}

// TestConcurrentConsume verifies that when many goroutines race to consume
// the same session, exactly one wins
func TestConcurrentConsume(t *testing.T) {
	m := NewManager(0)
	defer m.Stop()

	s, err := m.CreateChallenge(models.SessionAuthenticate, "", "")
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}

	numAttempts := 20
	var successCount atomic.Int32
	var notFoundCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Consume(s.ID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrSessionNotFound):
				notFoundCount.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful consume, got %d", successCount.Load())
	}
	if int(notFoundCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d not-found results, got %d", numAttempts-1, notFoundCount.Load())
	}
}

func TestSweeperRemovesExpired(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	defer m.Stop()

	for i := 0; i < 5; i++ {
		if _, err := m.CreateChallenge(models.SessionRegister, "user", "User"); err != nil {
			t.Fatalf("CreateChallenge failed: %v", err)
		}
	}

	if m.Len() != 5 {
		t.Fatalf("Expected 5 pending sessions, got %d", m.Len())
	}

	m.StartSweeper(20 * time.Millisecond)

	// Wait for expiry plus at least one sweep cycle
	deadline := time.Now().Add(500 * time.Millisecond)
	for m.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if m.Len() != 0 {
		t.Errorf("Expected sweeper to remove all expired sessions, %d remain", m.Len())
	}
}

func TestSweeperKeepsLiveSessions(t *testing.T) {
	m := NewManager(10 * time.Second)
	defer m.Stop()

	s, err := m.CreateChallenge(models.SessionRegister, "alice", "Alice A")
	if err != nil {
		t.Fatalf("CreateChallenge failed: %v", err)
	}

	m.StartSweeper(20 * time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	if _, err := m.Consume(s.ID); err != nil {
		t.Errorf("Live session was swept away: %v", err)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	m := NewManager(0)
	m.StartSweeper(10 * time.Millisecond)
	m.Stop()
	m.Stop()
}
