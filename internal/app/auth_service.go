package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"profilehub/internal/model"
	"profilehub/internal/repository"
	"profilehub/internal/session"
)

const minPasswordLen = 8

// dummyHash is compared against when the email does not resolve, so a login
// attempt costs the same whether or not the account exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type AuthService struct {
	userRepo *repository.UserRepository
	sessions *session.Store
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	SessionID string
	User      *model.User
}

func NewAuthService(userRepo *repository.UserRepository, sessions *session.Store) *AuthService {
	return &AuthService{userRepo: userRepo, sessions: sessions}
}

// Register creates a new account. The password is checked before anything is
// written, and the duplicate-email check and insert share one transaction so
// two concurrent registrations cannot both pass the check.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)

	if len(input.Password) < minPasswordLen {
		return nil, ErrWeakCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	err = s.userRepo.Transaction(ctx, func(txRepo *repository.UserRepository) error {
		existing, err := txRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateIdentity
		}
		return txRepo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and opens a session. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := normalizeEmail(input.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sid, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{SessionID: sid, User: user}, nil
}

// Logout invalidates the session. Calling it with an unknown or already
// cleared session id succeeds.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

// ResolveSession maps a session id to the authenticated user id, or
// ErrUnauthenticated when the session is missing or expired.
func (s *AuthService) ResolveSession(ctx context.Context, sid string) (uint, error) {
	if sid == "" {
		return 0, ErrUnauthenticated
	}
	userID, ok, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrUnauthenticated
	}
	return userID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
