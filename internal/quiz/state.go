package quiz

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidState indicates a quiz state token that fails verification.
var ErrInvalidState = errors.New("invalid quiz state")

// ErrExpiredState indicates a quiz state token past its expiry.
var ErrExpiredState = fmt.Errorf("%w: expired", ErrInvalidState)

// StateClaims pins the exact questions shown for one quiz attempt.
type StateClaims struct {
	Domain string `json:"domain"`
	Topic  string `json:"topic"`
	IDs    []int  `json:"ids"`
	jwt.RegisteredClaims
}

// AttemptID returns the token id that identifies the attempt.
func (claims StateClaims) AttemptID() string {
	return claims.ID
}

// Signer issues and verifies HS256 quiz state tokens.
type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSigner returns a signer keyed by secret. An empty secret selects a
// random per-process key, so tokens do not survive a restart.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate state key: %w", err)
		}
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("state ttl must be positive")
	}
	return &Signer{key: key, ttl: ttl, now: time.Now}, nil
}

// Sign issues a token for the given selection.
func (s *Signer) Sign(domain, topic string, ids []int) (string, StateClaims, error) {
	now := s.now()
	claims := StateClaims{
		Domain: domain,
		Topic:  topic,
		IDs:    ids,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", StateClaims{}, fmt.Errorf("sign quiz state: %w", err)
	}
	return token, claims, nil
}

// Verify parses token and checks its signature and expiry.
func (s *Signer) Verify(token string) (StateClaims, error) {
	var claims StateClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return StateClaims{}, ErrExpiredState
		}
		return StateClaims{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if !parsed.Valid {
		return StateClaims{}, ErrInvalidState
	}
	return claims, nil
}
