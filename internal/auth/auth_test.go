package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/models"
	"github.com/Kevin-Jay-Roberts21/Christmas-App/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store)
}

func TestRegister(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, " alice@example.com ", " alice ", "supersecret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "alice@example.com" || user.Username != "alice" {
		t.Errorf("identity not trimmed: %+v", user)
	}
	if user.PasswordHash == "supersecret" || user.PasswordHash == "" {
		t.Error("password stored unhashed")
	}

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "bob@example.com", "bob", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("error = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		_, err := a.Register(ctx, "", "bob", "supersecret")
		if !errors.Is(err, ErrInvalidIdentity) {
			t.Errorf("error = %v, want ErrInvalidIdentity", err)
		}
	})

	t.Run("duplicate account", func(t *testing.T) {
		_, err := a.Register(ctx, "alice@example.com", "alice2", "supersecret")
		if !errors.Is(err, ErrAccountExists) {
			t.Errorf("error = %v, want ErrAccountExists", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "alice@example.com", "alice", "supersecret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("by username and by email", func(t *testing.T) {
		for _, login := range []string{"alice", "alice@example.com"} {
			user, err := a.Authenticate(ctx, login, "supersecret")
			if err != nil {
				t.Fatalf("Authenticate(%q) failed: %v", login, err)
			}
			if user.Username != "alice" {
				t.Errorf("got user %s", user.Username)
			}
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice", "wrongpass")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody", "supersecret")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{ID: "u1", Username: "alice"}

	t.Run("valid token", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "u1" || claims.Username != "alice" {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		m := NewJWTManager("test-secret", -time.Hour)
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager("secret-a", time.Hour).Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := NewJWTManager("secret-b", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})
}
