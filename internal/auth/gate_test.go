package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestLoginWithDefaultSecret(t *testing.T) {
	g, err := New(Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := g.Login("wrong"); err != ErrInvalidSecret {
		t.Fatalf("expected ErrInvalidSecret, got %v", err)
	}
	if _, err := g.Login(""); err != ErrInvalidSecret {
		t.Fatalf("empty secret must be rejected, got %v", err)
	}
	s, err := g.Login(DefaultSecret)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	exp, err := g.Verify(s.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !exp.Equal(s.ExpiresAt) {
		t.Fatalf("expiry mismatch: %v vs %v", exp, s.ExpiresAt)
	}
}

func TestLoginWithBcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	g, err := New(Config{Secret: string(hash)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := g.Login(string(hash)); err == nil {
		t.Fatalf("the hash itself must not unlock the gate")
	}
	if _, err := g.Login("s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestVerifyRejects(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	g, _ := New(Config{Secret: "x", SigningKey: key, TTL: time.Minute})
	s, err := g.Login("x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	other, _ := New(Config{Secret: "x", SigningKey: []byte("another-key-another-key-another!")})
	if _, err := other.Verify(s.Token); !IsInvalidSession(err) {
		t.Fatalf("token from another key accepted: %v", err)
	}
	if _, err := g.Verify(""); !IsInvalidSession(err) {
		t.Fatalf("empty token accepted: %v", err)
	}
	if _, err := g.Verify("not.a.jwt"); !IsInvalidSession(err) {
		t.Fatalf("garbage token accepted: %v", err)
	}

	g.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := g.Verify(s.Token); !IsInvalidSession(err) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestHashSecret(t *testing.T) {
	h, err := HashSecret("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !isBcryptHash(h) {
		t.Fatalf("not a bcrypt hash: %q", h)
	}
	if _, err := HashSecret(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
