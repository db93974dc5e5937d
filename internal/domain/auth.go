package domain

import "time"

// TokenRequest optionally names the device asking for a session.
type TokenRequest struct {
	DeviceName string `json:"deviceName"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
