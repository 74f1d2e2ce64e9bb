package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret, 30*time.Minute)

	token, err := svc.Issue("alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, ok := svc.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "alice", subject)
}

func TestTokenService_VerifyExpiredToken(t *testing.T) {
	svc := NewTokenService(testSecret, -1*time.Minute)

	token, err := svc.Issue("alice")
	assert.NoError(t, err)

	_, ok := svc.Verify(token)
	assert.False(t, ok)
}

func TestTokenService_VerifyWrongKey(t *testing.T) {
	issuer := NewTokenService(testSecret, 30*time.Minute)
	verifier := NewTokenService("a-completely-different-signing-key!!", 30*time.Minute)

	token, err := issuer.Issue("alice")
	assert.NoError(t, err)

	_, ok := verifier.Verify(token)
	assert.False(t, ok)
}

func TestTokenService_VerifyMalformedToken(t *testing.T) {
	svc := NewTokenService(testSecret, 30*time.Minute)

	for _, tokenString := range []string{"", "garbage", "a.b.c", "header.payload"} {
		_, ok := svc.Verify(tokenString)
		assert.False(t, ok, "expected %q to be rejected", tokenString)
	}
}

func TestTokenService_VerifyEmptySubject(t *testing.T) {
	svc := NewTokenService(testSecret, 30*time.Minute)

	token, err := svc.Issue("")
	assert.NoError(t, err)

	_, ok := svc.Verify(token)
	assert.False(t, ok)
}
