package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"givetrack/internal/auth"
	"givetrack/internal/domain"
	"givetrack/internal/donations"
	handlers "givetrack/internal/http/handlers"
	"givetrack/internal/http/httpapi"
	"givetrack/internal/infra"
	"givetrack/internal/session"
)

type fakeUserRepo struct {
	byEmail     map[string]*domain.User
	createCalls int
	nextID      int
	getByIDErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	f.createCalls++
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	f.nextID++
	created := *user
	created.ID = fmt.Sprintf("user-%d", f.nextID)
	created.CreatedAt = time.Now().UTC()
	f.byEmail[user.Email] = &created
	out := created
	return &out, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) StampLogin(_ context.Context, id string, at time.Time, country string) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			stamped := at
			u.LastLoginAt = &stamped
			u.LastLoginCountry = country
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeDonationRepo struct {
	records []domain.Donation
	nextID  int
}

func (f *fakeDonationRepo) Create(_ context.Context, donation *domain.Donation) (string, error) {
	f.nextID++
	id := fmt.Sprintf("don-%d", f.nextID)
	stored := *donation
	stored.ID = id
	f.records = append([]domain.Donation{stored}, f.records...)
	return id, nil
}

func (f *fakeDonationRepo) ListByDateDesc(_ context.Context) ([]domain.Donation, error) {
	out := make([]domain.Donation, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeDonationRepo) DeleteByID(_ context.Context, id string) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			break
		}
	}
	return nil
}

type testEnv struct {
	app       *handlers.App
	router    http.Handler
	users     *fakeUserRepo
	donations *fakeDonationRepo
	sessions  *session.MemoryStore
}

func newTestEnv(passphrase string) *testEnv {
	logger := zerolog.Nop()
	users := newFakeUserRepo()
	donationRepo := &fakeDonationRepo{}
	sessions := session.NewMemoryStore(30 * time.Minute)
	secret := []byte("test-secret")

	app := &handlers.App{
		Logger:       logger,
		Users:        users,
		Donations:    donations.NewController(donationRepo, 10, logger),
		Auth:         auth.NewService(users, sessions, nil, secret, time.Hour, logger),
		Sessions:     sessions,
		JWTSecret:    secret,
		Passphrase:   passphrase,
		GateTokenTTL: time.Hour,
	}
	cfg := &infra.Config{
		JWTSecret:        "test-secret",
		AccessPassphrase: passphrase,
		RateLimitPerMin:  1000,
	}
	return &testEnv{
		app:       app,
		router:    httpapi.NewRouter(app, cfg),
		users:     users,
		donations: donationRepo,
		sessions:  sessions,
	}
}
