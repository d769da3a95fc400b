package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/server/models"
	"github.com/dmitrijs2005/authvault/internal/server/services"
)

// Response is the envelope shared by all API endpoints.
type Response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Token      string             `json:"token,omitempty"`
	User       *models.PublicUser `json:"user,omitempty"`
	TokenInfo  *TokenInfo         `json:"tokenInfo,omitempty"`
	ServerTime string             `json:"serverTime,omitempty"`
}

// TokenInfo mirrors services.TokenInfo with RFC 3339 timestamps.
type TokenInfo struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	IssuedAt  string `json:"issuedAt"`
	ExpiresAt string `json:"expiresAt"`
}

func newTokenInfo(info services.TokenInfo) *TokenInfo {
	return &TokenInfo{
		UserID:    info.UserID,
		Email:     info.Email,
		IssuedAt:  info.IssuedAt.UTC().Format(time.RFC3339),
		ExpiresAt: info.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Fixed outward messages for authentication failures. Distinct internal
// causes deliberately collapse into these to resist account enumeration.
const (
	msgInvalidCredentials = "invalid email or password"
	msgInvalidToken       = "invalid or expired token"
)

// writeError maps a taxonomy error onto a status code and a sanitized
// message. Validation and internal failures may carry detail; authentication
// failures never do.
func writeError(w http.ResponseWriter, err error, authMessage string) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, Response{Message: err.Error()})
	case errors.Is(err, common.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, Response{Message: "user already exists with this email"})
	case errors.Is(err, common.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, Response{Message: authMessage})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, Response{Message: "user not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, Response{Message: "internal server error"})
	}
}
