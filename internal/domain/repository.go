package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for user accounts and profiles.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	StampLogin(ctx context.Context, id string, at time.Time, country string) error
}

// DonationRepository handles donation persistence. Ids are assigned by the
// store at creation; callers never invent them.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) (string, error)
	ListByDateDesc(ctx context.Context) ([]Donation, error)
	DeleteByID(ctx context.Context, id string) error
}
