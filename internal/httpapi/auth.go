package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"slotbook/server/internal/model"
	"slotbook/server/internal/store"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	UserID  int64  `json:"userId"`
	Token   string `json:"token,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
	Token   string      `json:"token,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Username and password are required")
		return
	}

	created, err := s.store.CreateUser(r.Context(), model.User{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusBadRequest, "conflict", "Username already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "failed to create user")
		return
	}

	token, err := generateJWT(created.ID, created.Username)
	if err != nil {
		// The account exists; a missing token only disables the Bearer
		// fallback for this client.
		log.Printf("[auth] token generation failed: %v", err)
	}

	writeJSON(w, http.StatusOK, registerResponse{Success: true, UserID: created.ID, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Username is required")
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "failed to look up user")
		return
	}

	// Credentials are opaque and compared verbatim.
	if user.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
		return
	}

	token, err := generateJWT(user.ID, user.Username)
	if err != nil {
		log.Printf("[auth] token generation failed: %v", err)
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    userPayload{ID: user.ID, Username: user.Username},
		Token:   token,
	})
}
