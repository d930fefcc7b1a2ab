// Package jwtsession issues the signed dashboard session token handed to the
// caller once an orchestration terminates Authorized.
package jwtsession

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by a dashboard session token.
type Claims struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name,omitempty"`
	AttemptID string `json:"attempt_id"`
	jwt.RegisteredClaims
}

// Service signs and validates dashboard session tokens.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func NewService(signingKey, issuer string, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &Service{signingKey: []byte(signingKey), issuer: issuer, ttl: ttl}
}

// Issue signs a token for an authorized session. The attempt id becomes the
// token's JTI so audit events and tokens correlate.
func (s *Service) Issue(username, fullName, attemptID string) (string, error) {
	now := time.Now()
	id := attemptID
	if id == "" {
		id = uuid.NewString()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username:  username,
		FullName:  fullName,
		AttemptID: attemptID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        id,
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
