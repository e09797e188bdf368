package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	opt := TokenOptions{Secret: "s3cret", Issuer: "https://id.example.com/", Audience: "challenge-api", TTL: time.Minute}

	tok, err := GenerateToken("auth0|123", "a@example.com", "Alice", opt)
	require.NoError(t, err)

	claims, err := VerifyToken(tok, opt)
	require.NoError(t, err)
	assert.Equal(t, "auth0|123", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
}

func TestVerifyTokenRejects(t *testing.T) {
	opt := TokenOptions{Secret: "s3cret", TTL: time.Minute}
	tok, err := GenerateToken("auth0|123", "", "", opt)
	require.NoError(t, err)

	_, err = VerifyToken(tok, TokenOptions{Secret: "other"})
	assert.Error(t, err, "wrong secret")

	_, err = VerifyToken(tok, TokenOptions{Secret: "s3cret", Audience: "challenge-api"})
	assert.Error(t, err, "missing audience")

	_, err = VerifyToken(tok, TokenOptions{Secret: "s3cret", Issuer: "https://other/"})
	assert.Error(t, err, "wrong issuer")

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "auth0|123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = VerifyToken(expired, opt)
	assert.Error(t, err, "expired")

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = VerifyToken(noSub, opt)
	assert.Error(t, err, "no subject")

	_, err = VerifyToken("not-a-token", opt)
	assert.Error(t, err)

	_, err = VerifyToken(tok, TokenOptions{})
	assert.Error(t, err, "secret not configured")
}

func TestGenerateTokenRequiresSubject(t *testing.T) {
	_, err := GenerateToken("", "", "", TokenOptions{Secret: "s"})
	assert.Error(t, err)

	_, err = GenerateToken("sub", "", "", TokenOptions{})
	assert.Error(t, err)
}
