package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go-auth-gateway/internal/model"
)

type userStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

type passwordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Compare(ctx context.Context, plaintext string, hash string) (bool, error)
}

type tokenIssuer interface {
	Issue(user model.User) (model.TokenPair, error)
}

// AuthService turns a credential pair into a session, registering unseen emails.
type AuthService struct {
	users        userStore
	hasher       passwordHasher
	tokens       tokenIssuer
	storeTimeout time.Duration
	hashTimeout  time.Duration
	now          func() time.Time
}

// NewAuthService bounds every store call by storeTimeout and every hash or compare by hashTimeout.
func NewAuthService(users userStore, hasher passwordHasher, tokens tokenIssuer, storeTimeout time.Duration, hashTimeout time.Duration) *AuthService {
	return &AuthService{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		storeTimeout: storeTimeout,
		hashTimeout:  hashTimeout,
		now:          time.Now,
	}
}

// Authenticate logs an existing account in, or registers the email on first
// use. Both branches end in a freshly issued token pair.
func (s *AuthService) Authenticate(ctx context.Context, email string, password string) (model.AuthResult, error) {
	if email == "" || password == "" {
		return model.AuthResult{}, model.ErrMissingCredentials
	}

	user, err := s.findByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.checkPassword(ctx, user, password); err != nil {
			return model.AuthResult{}, err
		}
		return s.issue(user, false)
	case errors.Is(err, model.ErrUserNotFound):
		return s.register(ctx, email, password)
	default:
		return model.AuthResult{}, fmt.Errorf("%w: %w", model.ErrInternal, err)
	}
}

func (s *AuthService) register(ctx context.Context, email string, password string) (model.AuthResult, error) {
	hashCtx, cancel := s.bound(ctx, s.hashTimeout)
	hash, err := s.hasher.Hash(hashCtx, password)
	cancel()
	if errors.Is(err, model.ErrPasswordTooLong) {
		return model.AuthResult{}, err
	}
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("%w: %w", model.ErrInternal, err)
	}

	storeCtx, cancel := s.bound(ctx, s.storeTimeout)
	created, err := s.users.Create(storeCtx, model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	})
	cancel()

	if errors.Is(err, model.ErrDuplicateKey) {
		// Another request created the account between lookup and insert.
		slog.Debug("lost account create race, falling back to login", "email", email)
		winner, findErr := s.findByEmail(ctx, email)
		if findErr != nil {
			return model.AuthResult{}, fmt.Errorf("%w: %w", model.ErrInternal, findErr)
		}
		if err := s.checkPassword(ctx, winner, password); err != nil {
			return model.AuthResult{}, err
		}
		return s.issue(winner, false)
	}
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("%w: %w", model.ErrInternal, err)
	}

	slog.Info("account created", "user_id", created.ID, "email", created.Email)
	return s.issue(created, true)
}

func (s *AuthService) checkPassword(ctx context.Context, user model.User, password string) error {
	hashCtx, cancel := s.bound(ctx, s.hashTimeout)
	defer cancel()

	ok, err := s.hasher.Compare(hashCtx, password, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInternal, err)
	}
	if !ok {
		return model.ErrInvalidCredentials
	}
	return nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (model.User, error) {
	storeCtx, cancel := s.bound(ctx, s.storeTimeout)
	defer cancel()
	return s.users.FindByEmail(storeCtx, email)
}

func (s *AuthService) issue(user model.User, isNew bool) (model.AuthResult, error) {
	pair, err := s.tokens.Issue(user)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("%w: %w", model.ErrInternal, err)
	}
	return model.AuthResult{User: user, IsNewAccount: isNew, Tokens: pair}, nil
}

func (s *AuthService) bound(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
