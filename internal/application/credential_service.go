package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/domain/repository"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

// Notifier is told about new accounts. Failures never undo a registration.
type Notifier interface {
	UserRegistered(ctx context.Context, u entity.User) error
}

// CredentialService owns user records and password checks.
type CredentialService struct {
	Users    repository.UserRepository
	Hasher   *helpers.PasswordHasher
	Notifier Notifier
	Logger   *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewCredentialService(users repository.UserRepository, hasher *helpers.PasswordHasher, notifier Notifier, logger *logrus.Logger) *CredentialService {
	return &CredentialService{Users: users, Hasher: hasher, Notifier: notifier, Logger: logger}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a salted password hash.
func (s *CredentialService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = NormalizeEmail(email)

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Name: strings.TrimSpace(name), Email: email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.Add(metricUsersRegistered, 1)

	if s.Notifier != nil {
		if err := s.Notifier.UserRegistered(ctx, *u); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome notification failed")
		}
	}
	return u, nil
}

func (s *CredentialService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// Verify compares plain against the stored hash in constant time.
func (s *CredentialService) Verify(plain, storedHash string) bool {
	return s.Hasher.Verify(storedHash, plain)
}

// Authenticate returns the user owning email if password matches.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		// burn the same hashing work as a real check
		s.Verify(password, s.dummy())
		metrics.Add(metricLoginsFailed, 1)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.Verify(password, u.Password) {
		metrics.Add(metricLoginsFailed, 1)
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *CredentialService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
