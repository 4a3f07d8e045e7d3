package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind names what a scope token identifies.
type Kind string

const (
	// KindSession identifies a browser session (tab lifetime).
	KindSession Kind = "session"
	// KindDevice identifies a browser across sessions ("remember me").
	KindDevice Kind = "device"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrWrongKind    = errors.New("jwtx: token kind mismatch")
)

// ScopeClaims are carried in the session and device cookies.
type ScopeClaims struct {
	jwt.RegisteredClaims

	Kind Kind `json:"knd"`
}

// ScopeSigner signs and verifies scope tokens with HMAC-SHA256.
type ScopeSigner struct {
	Secret []byte
	Issuer string

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *ScopeSigner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Sign issues a token binding id to kind. A zero ttl produces a token without
// an expiry; cookie lifetime then decides.
func (s *ScopeSigner) Sign(kind Kind, id string, ttl time.Duration) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("jwtx: empty signing secret")
	}

	now := s.now()
	claims := ScopeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.Issuer,
			Subject:  id,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Kind: kind,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify checks signature, issuer, expiry and kind, and returns the scope id.
func (s *ScopeSigner) Verify(raw string, kind Kind) (string, error) {
	var claims ScopeClaims

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.Issuer))
	}

	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Kind != kind {
		return "", ErrWrongKind
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
