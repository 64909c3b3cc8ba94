package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"givetrack/internal/domain"
	"givetrack/internal/session"
)

type fakeUserRepo struct {
	users       map[string]*domain.User // keyed by email
	stampCalls  int
	stampUserID string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	created := *user
	created.ID = "user-" + user.Email
	f.users[user.Email] = &created
	out := created
	return &out, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) StampLogin(_ context.Context, id string, _ time.Time, _ string) error {
	f.stampCalls++
	f.stampUserID = id
	return nil
}

func newTestService(users *fakeUserRepo) *Service {
	return NewService(users, session.NewMemoryStore(30*time.Minute), nil, []byte("test-secret"), time.Hour, zerolog.Nop())
}

func TestSignUpHashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users)

	user, err := svc.SignUp(context.Background(), "Alice Smith", "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("SignUp() error: %v", err)
	}
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Fatalf("SignUp() stored a plaintext or empty password hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("stored hash does not verify the original password: %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "Alice", "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("first SignUp() error: %v", err)
	}
	if _, err := svc.SignUp(ctx, "Alice Again", "alice@example.com", "other"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("second SignUp() = %v, want ErrEmailTaken", err)
	}
}

func TestSignInIssuesTokenAndStampsLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users)
	ctx := context.Background()

	registered, err := svc.SignUp(ctx, "Alice", "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("SignUp() error: %v", err)
	}

	token, user, err := svc.SignIn(ctx, "alice@example.com", "hunter2", "203.0.113.1")
	if err != nil {
		t.Fatalf("SignIn() error: %v", err)
	}
	if token == "" {
		t.Fatalf("SignIn() returned empty token")
	}
	if user.ID != registered.ID {
		t.Fatalf("SignIn() user id = %q, want %q", user.ID, registered.ID)
	}
	if users.stampCalls != 1 || users.stampUserID != registered.ID {
		t.Fatalf("StampLogin calls = %d for %q, want 1 for %q", users.stampCalls, users.stampUserID, registered.ID)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("SignIn() did not merge the last sign-in time into the user")
	}

	claims, err := ParseToken([]byte("test-secret"), token)
	if err != nil {
		t.Fatalf("ParseToken() error: %v", err)
	}
	if claims.Subject != registered.ID || claims.SessionID == "" {
		t.Fatalf("token claims = %+v, want subject %q and a session id", claims, registered.ID)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestService(users)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "Alice", "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("SignUp() error: %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "alice@example.com", "wrong", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("SignIn() = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	if _, _, err := svc.SignIn(context.Background(), "nobody@example.com", "pw", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("SignIn() = %v, want ErrInvalidCredentials", err)
	}
}
