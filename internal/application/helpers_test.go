package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/coursenet/internal/domain/entity"
	"github.com/oksasatya/coursenet/internal/infrastructure/memory"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

var errStore = errors.New("store unavailable")

type fixture struct {
	users    *memory.UserRepository
	posts    *memory.PostRepository
	sessions *memory.SessionRepository
	creds    *CredentialService
	auth     *SessionService
	postSvc  *PostService
	tokens   *helpers.JWTManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hasher, err := helpers.NewPasswordHasher(helpers.MethodPBKDF2, 1000)
	require.NoError(t, err)

	f := &fixture{
		users:    memory.NewUserRepository(),
		sessions: memory.NewSessionRepository(),
		tokens:   helpers.NewJWTManager("test-secret", time.Hour, "coursenet"),
	}
	f.posts = memory.NewPostRepository(f.users)
	logger := helpers.NewDiscardLogger()
	f.creds = NewCredentialService(f.users, hasher, nil, logger)
	f.auth = NewSessionService(f.creds, f.users, f.sessions, f.tokens, logger)
	f.postSvc = NewPostService(f.posts, nil, nil, logger)
	return f
}

// failingUsers fails every call with errStore.
type failingUsers struct{}

func (failingUsers) Create(context.Context, *entity.User) error { return errStore }
func (failingUsers) GetByID(context.Context, int64) (*entity.User, error) {
	return nil, errStore
}
func (failingUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errStore
}
