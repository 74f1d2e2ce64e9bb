package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies time-boxed signed bearer tokens.
type TokenService interface {
	// Issue returns a signed token carrying the subject, valid for the
	// configured expiry window.
	Issue(subject string) (string, error)
	// Verify checks signature and expiry. It returns the embedded
	// subject and true on success, and ("", false) on any structural or
	// cryptographic failure. Callers branch on the boolean; there is no
	// error detail to act on.
	Verify(token string) (string, bool)
}

type tokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string, expiry time.Duration) TokenService {
	return &tokenService{secret: []byte(secret), expiry: expiry}
}

func (s *tokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Verify(tokenString string) (string, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
