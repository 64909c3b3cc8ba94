package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GateCookieName carries proof that the entry passphrase was supplied.
const GateCookieName = "gate_token"

const gateSubject = "entry-gate"

// SignGateToken mints the short-lived token set after a correct passphrase.
func SignGateToken(secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   gateSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign gate token: %w", err)
	}
	return signed, nil
}

func verifyGateToken(secret []byte, raw string) bool {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	return err == nil && token.Valid && claims.Subject == gateSubject
}

// Gate blocks the login/register entry routes until the shared passphrase
// has been supplied via the unlock endpoint. It is an access gate, not an
// auth boundary: no per-user identity, no lockout, unlimited attempts.
// An empty passphrase disables the gate entirely.
func Gate(passphrase string, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if passphrase == "" {
				next.ServeHTTP(w, r)
				return
			}
			cookie, err := r.Cookie(GateCookieName)
			if err != nil || !verifyGateToken(secret, cookie.Value) {
				writeJSONError(w, http.StatusUnauthorized, "locked", "Access locked, unlock with the passphrase first")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}
