package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"givetrack/internal/middleware"
)

type gateUnlockRequest struct {
	Passphrase string `json:"passphrase"`
}

// GateUnlock checks the shared entry passphrase and, on a match, sets the
// signed gate cookie that the login/register routes require. Attempts are
// unlimited; a wrong passphrase just reports the error and stays locked.
func (a *App) GateUnlock(w http.ResponseWriter, r *http.Request) {
	if a.Passphrase == "" {
		a.json(w, http.StatusOK, map[string]any{"unlocked": true})
		return
	}

	var req gateUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Passphrase), []byte(a.Passphrase)) != 1 {
		a.error(w, http.StatusUnauthorized, "invalid_passphrase", "Incorrect password")
		return
	}

	token, err := middleware.SignGateToken(a.JWTSecret, a.GateTokenTTL)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign gate token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to unlock")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.GateCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.GateTokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	a.json(w, http.StatusOK, map[string]any{"unlocked": true})
}
