package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"givetrack/internal/auth"
	"givetrack/internal/domain"
	"givetrack/internal/donations"
	"givetrack/internal/session"
)

// App is the handler container: every route method hangs off it.
type App struct {
	Logger       zerolog.Logger
	Users        domain.UserRepository
	Donations    *donations.Controller
	Auth         *auth.Service
	Sessions     session.Store
	JWTSecret    []byte
	Passphrase   string
	GateTokenTTL time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}
