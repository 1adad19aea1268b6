package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Fixed demo identity. No user records are persisted; authentication is a
// stateless check against this pair.
const (
	DemoEmail    = "demo@demo.cz"
	DemoPassword = "demo"
)

// AuthService issues and verifies signed bearer tokens for the demo identity.
type AuthService struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates an AuthService signing HS256 tokens with the given
// secret, valid for ttl.
func NewAuthService(secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{secret: secret, ttl: ttl}
}

// Login returns a signed token when the credentials exactly match the demo
// pair, ErrInvalidCredentials otherwise.
func (s *AuthService) Login(email, password string) (string, error) {
	if email != DemoEmail || password != DemoPassword {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// Verify checks the token signature and validity window. Any failure is
// reported as ErrInvalidToken; callers do not distinguish expiry from forgery.
func (s *AuthService) Verify(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
