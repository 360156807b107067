package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/domain/repository"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

// Session is an established login: the server-side record id plus the signed token handed to the client.
type Session struct {
	ID        string
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// SessionService binds authenticated users to requests.
//
// A token resolves to a user only while its signature is valid, it is unexpired,
// and the server-side record it names still exists for the same user.
type SessionService struct {
	Credentials *CredentialService
	Users       repository.UserRepository
	Sessions    repository.SessionRepository
	Tokens      *helpers.JWTManager
	Logger      *logrus.Logger
}

func NewSessionService(creds *CredentialService, users repository.UserRepository, sessions repository.SessionRepository, tokens *helpers.JWTManager, logger *logrus.Logger) *SessionService {
	return &SessionService{Credentials: creds, Users: users, Sessions: sessions, Tokens: tokens, Logger: logger}
}

func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Credentials.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	sess, err := s.Establish(ctx, u)
	if err != nil {
		return nil, err
	}
	metrics.Add(metricLoginsOK, 1)
	return sess, nil
}

// Establish opens a new session for u without checking credentials.
func (s *SessionService) Establish(ctx context.Context, u *entity.User) (*Session, error) {
	sid := uuid.NewString()
	token, exp, err := s.Tokens.GenerateSessionToken(u.ID, sid)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	rec := entity.Session{ID: sid, UserID: u.ID, CreatedAt: time.Now().UTC(), ExpiresAt: exp}
	if err := s.Sessions.Save(ctx, rec, s.Tokens.TTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "sid": sid}).Debug("session established")
	}
	return &Session{ID: sid, User: u, Token: token, ExpiresAt: exp}, nil
}

// CurrentUser resolves token to its user. Anything short of a live session is ErrAnonymous;
// other errors come from the stores.
func (s *SessionService) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrAnonymous
	}
	claims, err := s.Tokens.ParseSessionToken(token)
	if err != nil {
		return nil, ErrAnonymous
	}
	rec, err := s.Sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAnonymous
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if rec.UserID != claims.UserID {
		return nil, ErrAnonymous
	}
	u, err := s.Users.GetByID(ctx, rec.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		_ = s.Sessions.Delete(ctx, rec.ID)
		return nil, ErrAnonymous
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

// Logout deletes the session named by token. Unparseable tokens are already anonymous.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.Tokens.ParseSessionToken(token)
	if err != nil {
		return nil
	}
	if err := s.Sessions.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	metrics.Add(metricLogouts, 1)
	return nil
}
