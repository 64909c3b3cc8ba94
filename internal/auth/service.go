// Package auth implements the session provider: credential creation and
// verification, sign-in session issuance, and sign-out.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"givetrack/internal/domain"
	"givetrack/internal/infra/geoip"
	"givetrack/internal/session"
)

// Service wires the credential store, session store, and sign-in audit.
type Service struct {
	users    domain.UserRepository
	sessions session.Store
	geo      geoip.CountryResolver
	secret   []byte
	tokenTTL time.Duration
	logger   zerolog.Logger
}

// NewService constructs the auth service. geo may be nil; sign-in country
// resolution is then skipped.
func NewService(users domain.UserRepository, sessions session.Store, geo geoip.CountryResolver, secret []byte, tokenTTL time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		geo:      geo,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// SignUp creates the credential and writes the profile row keyed by the new
// identity. Local form validation happens at the handler; by the time this
// runs the input is structurally valid.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn verifies the credential, opens a session, stamps the last-login
// audit fields, and returns a signed token plus the user. A failed country
// lookup never fails the sign-in.
func (s *Service) SignIn(ctx context.Context, email, password, clientIP string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("open session: %w", err)
	}

	now := time.Now().UTC()
	country := s.resolveCountry(clientIP)
	if err := s.users.StampLogin(ctx, user.ID, now, country); err != nil {
		// Audit only; the sign-in itself already succeeded.
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("stamp last login failed")
	} else {
		user.LastLoginAt = &now
		user.LastLoginCountry = country
	}

	token, err := SignToken(s.secret, user.ID, sess.ID, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SignOut terminates the session. Failures are logged, not surfaced.
func (s *Service) SignOut(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("sign out failed")
	}
}

func (s *Service) resolveCountry(ip string) string {
	if s.geo == nil || ip == "" {
		return ""
	}
	country, err := s.geo.CountryCode(ip)
	if err != nil {
		s.logger.Debug().Err(err).Str("ip", ip).Msg("country lookup failed")
		return ""
	}
	return country
}
