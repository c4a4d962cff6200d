package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tripzy/internal/models"
	"github.com/mmynk/tripzy/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
}

func TestPasswordAuthenticator(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, " Ada@Example.com ", "Ada", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email = %q, want normalized", user.Email)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "ada@example.com", "correct horse", nil},
		{"email is case-insensitive", "ADA@example.com", "correct horse", nil},
		{"wrong password", "ada@example.com", "battery staple", ErrInvalidCredentials},
		{"unknown email", "bob@example.com", "correct horse", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Authenticate(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.ID != user.ID {
				t.Errorf("got user %s, want %s", got.ID, user.ID)
			}
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "ada@example.com", "Ada 2", "another password")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "weak@example.com", "Weak", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("error = %v, want ErrWeakPassword", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := models.NewUser("ada@example.com", "Ada", "")

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		claims, err := m.ValidateHeader("Bearer " + token)
		if err != nil {
			t.Fatalf("ValidateHeader failed: %v", err)
		}
		if claims.UserID != user.ID || claims.Email != user.Email {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("header errors", func(t *testing.T) {
		if _, err := m.ValidateHeader(""); !errors.Is(err, ErrMissingToken) {
			t.Errorf("empty header: %v", err)
		}
		if _, err := m.ValidateHeader("Token " + token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("wrong scheme: %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTManager("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := later.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(token, ".")
		tampered := parts[0] + "." + parts[1] + "x." + parts[2]
		if _, err := m.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})
}
