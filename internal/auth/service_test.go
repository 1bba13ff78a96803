package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"moodtunes/internal/database"

	"github.com/sirupsen/logrus"
)

func newTestService(t *testing.T, hashPasswords bool) *Service {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "auth_test.db")
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return NewService(db, hashPasswords, logger)
}

func TestRegister(t *testing.T) {
	svc := newTestService(t, false)

	t.Run("NewUser", func(t *testing.T) {
		user, err := svc.Register("alice", "secret")
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("Expected username alice, got %s", user.Username)
		}
		if user.ID <= 0 {
			t.Errorf("Expected positive user ID, got %d", user.ID)
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		if _, err := svc.Register("bob", "pw"); err != nil {
			t.Fatalf("Failed to register first time: %v", err)
		}

		_, err := svc.Register("bob", "other")
		if !errors.Is(err, ErrDuplicateUser) {
			t.Errorf("Expected ErrDuplicateUser, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	svc := newTestService(t, false)

	registered, err := svc.Register("carol", "hunter2")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	t.Run("CorrectCredentials", func(t *testing.T) {
		user, err := svc.Login("carol", "hunter2")
		if err != nil {
			t.Fatalf("Expected successful login, got %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("Expected userId %d, got %d", registered.ID, user.ID)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login("carol", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		_, err := svc.Login("mallory", "hunter2")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestLoginWithHashedPasswords(t *testing.T) {
	svc := newTestService(t, true)

	if _, err := svc.Register("dave", "topsecret"); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	t.Run("HashIsStoredNotPlaintext", func(t *testing.T) {
		if _, err := svc.Login("dave", "topsecret"); err != nil {
			t.Errorf("Expected hashed login to succeed, got %v", err)
		}
		// The raw hash must not work as a password
		user, _ := svc.db.GetUserByUsername("dave")
		if user == nil {
			t.Fatal("Expected stored user")
		}
		if user.Password == "topsecret" {
			t.Error("Expected password to be hashed in the store")
		}
		if !isHashedPassword(user.Password) {
			t.Errorf("Expected bcrypt hash, got %q", user.Password)
		}
	})

	t.Run("WrongPasswordStillRejected", func(t *testing.T) {
		_, err := svc.Login("dave", "nope")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}
