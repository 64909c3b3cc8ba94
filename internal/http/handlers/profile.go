package handlers

import (
	"errors"
	"net/http"
	"strings"

	"givetrack/internal/auth"
	"givetrack/internal/domain"
	"givetrack/internal/middleware"
)

// Me point-reads the caller's profile, already merged with the last sign-in
// metadata stamped at login.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("profile load failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}
	a.json(w, http.StatusOK, user.Profile())
}

// Root mirrors the SPA entry route: a request carrying a live session is
// sent to the profile, everything else to the login page.
func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	if a.hasLiveSession(r) {
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (a *App) hasLiveSession(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return false
	}
	claims, err := auth.ParseToken(a.JWTSecret, parts[1])
	if err != nil {
		return false
	}
	_, err = a.Sessions.Touch(r.Context(), claims.SessionID)
	return err == nil
}
