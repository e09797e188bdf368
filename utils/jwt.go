package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims: Subject là id của user bên identity provider (auth_id).
type JWTClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type TokenOptions struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// GenerateToken tạo JWT token HS256 cho subject
func GenerateToken(subject, email, name string, opt TokenOptions) (string, error) {
	if opt.Secret == "" {
		return "", errors.New("JWT secret is not configured")
	}
	if subject == "" {
		return "", errors.New("token subject is empty")
	}
	ttl := opt.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	claims := JWTClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    opt.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if opt.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opt.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(opt.Secret))
}

// VerifyToken xác minh chữ ký, hạn dùng và (nếu cấu hình) issuer/audience
func VerifyToken(tokenStr string, opt TokenOptions) (*JWTClaims, error) {
	if opt.Secret == "" {
		return nil, errors.New("JWT secret is not configured")
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if opt.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opt.Issuer))
	}
	if opt.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opt.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(opt.Secret), nil
	}, parserOpts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
