// Package auth implements the console's shared-secret access gate. A caller
// that presents the configured secret receives a signed session token; the
// token is the only state the gate keeps, so logging out is just dropping it.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultSecret is used when no access secret is configured.
	DefaultSecret = "Gw@2025-Demo!"
	DefaultTTL    = 12 * time.Hour

	issuer   = "gatewayd"
	audience = "console"
)

// ErrInvalidSecret is returned by Login when the secret does not match.
var ErrInvalidSecret = gateError{msg: "invalid access secret"}

// ErrInvalidSession is returned by Verify for missing, forged or expired tokens.
var ErrInvalidSession = gateError{msg: "session is locked"}

type gateError struct{ msg string }

func (e gateError) Error() string   { return e.msg }
func (e gateError) StatusCode() int { return http.StatusUnauthorized }

// Config configures a Gate.
type Config struct {
	// Secret is compared against submitted secrets. A value that looks like a
	// bcrypt hash is compared with bcrypt; anything else in constant time.
	Secret string
	// SigningKey signs session tokens. Empty means a random per-process key,
	// which locks every session on restart.
	SigningKey []byte
	TTL        time.Duration
}

// Session is an unlocked session handed back to the caller.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type Gate struct {
	secret string
	hashed bool
	key    []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg Config) (*Gate, error) {
	g := &Gate{secret: cfg.Secret, key: cfg.SigningKey, ttl: cfg.TTL, now: time.Now}
	if g.secret == "" {
		g.secret = DefaultSecret
	}
	g.hashed = isBcryptHash(g.secret)
	if g.ttl <= 0 {
		g.ttl = DefaultTTL
	}
	if len(g.key) == 0 {
		g.key = make([]byte, 32)
		if _, err := rand.Read(g.key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
	}
	return g, nil
}

// TTL returns the lifetime of issued sessions.
func (g *Gate) TTL() time.Duration { return g.ttl }

// Login checks secret and issues a session token.
func (g *Gate) Login(secret string) (Session, error) {
	if !g.matches(secret) {
		return Session{}, ErrInvalidSecret
	}
	now := g.now()
	exp := now.Add(g.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.key)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{Token: token, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Verify checks a session token and returns its expiry.
func (g *Gate) Verify(token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrInvalidSession
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return g.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidSession, err)
	}
	return claims.ExpiresAt.Time, nil
}

func (g *Gate) matches(secret string) bool {
	if secret == "" {
		return false
	}
	if g.hashed {
		return bcrypt.CompareHashAndPassword([]byte(g.secret), []byte(secret)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(secret)) == 1
}

// HashSecret returns a bcrypt hash suitable for the access_secret setting.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("empty secret")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isBcryptHash(s string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// IsInvalidSession reports whether err came from a rejected session token.
func IsInvalidSession(err error) bool { return errors.Is(err, ErrInvalidSession) }
