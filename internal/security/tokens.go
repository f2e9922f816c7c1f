package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or
	// signed with the wrong key.
	ErrInvalidToken = errors.New("invalid token")
)

// StaffClaims holds JWT claims for a staff access token.
type StaffClaims struct {
	jwt.RegisteredClaims
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId"`
}

// TokenProvider issues and validates staff JWTs signed with HS256.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenProvider returns a TokenProvider signing with the given shared secret.
func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue issues a staff JWT carrying the role and employee id.
// Returns the token string and its expiration time.
func (p *TokenProvider) Issue(role, employeeID string) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(p.ttl)
	claims := StaffClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "employee",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:       role,
		EmployeeID: employeeID,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(p.secret)
	return token, expiresAt, err
}

// Validate parses and validates a staff token (signature, exp).
// Returns the role and employee id, or ErrInvalidToken.
func (p *TokenProvider) Validate(tokenString string) (role, employeeID string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*StaffClaims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}
	return claims.Role, claims.EmployeeID, nil
}
