package api

import (
	"errors"
	"net/http"

	"github.com/trumall/market/internal/auth"
	"github.com/trumall/market/internal/middleware"
)

type credentialsRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// Signup registers a new identity and opens its ledger.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	user, err := h.creds.Register(r.Context(), req.Username, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			respondWithError(w, http.StatusConflict, "username already exists")
		case errors.Is(err, auth.ErrEmptyCredentials):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Registration failed", "username", req.Username, "error", err)
			respondWithError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	h.ledgers.Create(user.ID)

	h.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	respondWithJSON(w, http.StatusCreated, user)
}

// Login authenticates a user and returns a session token. Unknown usernames
// and wrong passwords produce an identical response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	user, err := h.creds.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("Failed to issue token", "user_id", user.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)
	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load user", "user_id", userID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		respondWithError(w, http.StatusNotFound, "user not found")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
