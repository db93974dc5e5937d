package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/logger"
	"github.com/yusufkecer/calorist-backend/internal/middleware"
)

type AuthHandler struct {
	jwtSecret string
	ttl       time.Duration
	log       *logger.Logger
	now       func() time.Time
}

func NewAuthHandler(jwtSecret string, ttl time.Duration, log *logger.Logger) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, ttl: ttl, log: log, now: time.Now}
}

// Token issues a device session. The API key has already been checked by
// the time the request gets here.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, expiresAt, err := middleware.GenerateToken(h.jwtSecret, h.ttl, h.now())
	if err != nil {
		h.log.Error("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.log.Info("session issued", "device", req.DeviceName, "expires_at", expiresAt)
	writeJSON(w, http.StatusOK, domain.TokenResponse{Token: token, ExpiresAt: expiresAt.UTC()})
}
