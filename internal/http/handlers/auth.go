package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"givetrack/internal/domain"
	"givetrack/internal/middleware"
)

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token,omitempty"`
	User    domain.UserProfile `json:"user"`
}

// Register validates the sign-up form locally first; only structurally
// valid input reaches the account store.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		a.error(w, http.StatusBadRequest, "validation", "Please fill all fields.")
		return
	}
	if req.Password != req.ConfirmPassword {
		a.error(w, http.StatusBadRequest, "validation", "Passwords do not match.")
		return
	}

	user, err := a.Auth.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			a.error(w, http.StatusConflict, "conflict", err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("register failed")
		a.error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	a.json(w, http.StatusCreated, authResponse{
		Message: "User Registered Successfully!!",
		User:    user.Profile(),
	})
}

// Login verifies the credential and returns the session token. The failure
// message is passed through verbatim; nothing about the attempt is cleared,
// so the caller may retry immediately.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	token, user, err := a.Auth.SignIn(r.Context(), req.Email, req.Password, middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			a.error(w, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("login failed")
		a.error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	a.json(w, http.StatusOK, authResponse{
		Message: "User logged in Successfully",
		Token:   token,
		User:    user.Profile(),
	})
}

// Logout tears the session down. Provider errors are logged inside the
// service and never surfaced past a diagnostic.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	a.Auth.SignOut(r.Context(), middleware.SessionIDFromContext(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}
