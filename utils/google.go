package utils

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// ValidateGoogleToken được tách ra biến để test thay bằng bản giả.
var ValidateGoogleToken = idtoken.Validate

// VerifyGoogleIDToken kiểm tra ID token do Google cấp cho clientID và lấy thông tin hồ sơ
func VerifyGoogleIDToken(ctx context.Context, rawToken, clientID string) (*GoogleProfile, error) {
	if clientID == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID is not configured")
	}
	payload, err := ValidateGoogleToken(ctx, rawToken, clientID)
	if err != nil {
		return nil, err
	}

	p := &GoogleProfile{Subject: payload.Subject}
	p.Email, _ = payload.Claims["email"].(string)
	p.Name, _ = payload.Claims["name"].(string)
	p.Picture, _ = payload.Claims["picture"].(string)
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, errors.New("google email is not verified")
	}
	if p.Email == "" {
		return nil, errors.New("google token has no email")
	}
	if p.Name == "" {
		p.Name = p.Email
	}
	return p, nil
}
