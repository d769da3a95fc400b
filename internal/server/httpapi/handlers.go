package httpapi

import (
	"encoding/json"
	"net/http"
	"time"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Message: "invalid request body"})
		return
	}

	token, user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err, msgInvalidCredentials)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "user registered successfully",
		Token:   token,
		User:    user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Message: "invalid request body"})
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, msgInvalidCredentials)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "login successful",
		Token:   token,
		User:    user,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	session, err := s.auth.VerifySession(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeError(w, err, msgInvalidToken)
		return
	}

	user := session.User
	writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Message:    "protected data accessed successfully",
		User:       &user,
		TokenInfo:  newTokenInfo(session.Token),
		ServerTime: time.Now().UTC().Format(time.RFC3339),
	})
}
