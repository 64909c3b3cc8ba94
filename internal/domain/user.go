package domain

import (
	"strings"
	"time"
)

// User is an account row: the credential half (email + password hash) and
// the profile half written at registration.
type User struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string
	LastLoginAt      *time.Time
	LastLoginCountry string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FirstName returns the leading word of the registered name, used as the
// default receiver on new donations and in profile greetings.
func (u User) FirstName() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// UserProfile is the view-facing projection of a user merged with the last
// sign-in metadata.
type UserProfile struct {
	UID              string     `json:"uid"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	FirstName        string     `json:"first_name"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	LastLoginCountry string     `json:"last_login_country,omitempty"`
}

// Profile projects the user into its view model.
func (u User) Profile() UserProfile {
	return UserProfile{
		UID:              u.ID,
		Email:            u.Email,
		Name:             u.Name,
		FirstName:        u.FirstName(),
		LastLogin:        u.LastLoginAt,
		LastLoginCountry: u.LastLoginCountry,
	}
}
