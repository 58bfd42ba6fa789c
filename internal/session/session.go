// Package session carries the authenticated landlord through every data-access call.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a bearer token cannot be verified
var ErrInvalidToken = errors.New("invalid or expired token")

// Session identifies the landlord on whose behalf a request runs
type Session struct {
	LandlordID string
	Phone      string
}

// Valid reports whether the session names a landlord
func (s Session) Valid() bool {
	return s.LandlordID != ""
}

// Claims are the token claims issued by the auth provider
type Claims struct {
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier turns HS256 bearer tokens into sessions
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for tokens signed with secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token and returns the session it describes
func (v *Verifier) Verify(token string) (Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Session{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return Session{LandlordID: claims.Subject, Phone: claims.Phone}, nil
}

// Sign issues a token for the session, used by the CLI and tests
func (v *Verifier) Sign(s Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Phone: s.Phone,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.LandlordID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
