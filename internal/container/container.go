package container

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursenet/config"
	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/domain/repository"
	"github.com/oksasatya/coursenet/internal/infrastructure/memory"
	"github.com/oksasatya/coursenet/internal/infrastructure/mq"
	pginfra "github.com/oksasatya/coursenet/internal/infrastructure/postgres"
	"github.com/oksasatya/coursenet/internal/infrastructure/redisstore"
	"github.com/oksasatya/coursenet/internal/infrastructure/search"
	"github.com/oksasatya/coursenet/internal/infrastructure/storage"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// CheckFunc reports whether a backing service is reachable.
type CheckFunc func(ctx context.Context) error

// Container holds every constructed component of the web process.
// Nothing is global: cmd/* build one and hand it to the router.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *gcs.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher

	Users    repository.UserRepository
	Posts    repository.PostRepository
	Sessions repository.SessionRepository

	Hasher  *helpers.PasswordHasher
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	Credentials *application.CredentialService
	Auth        *application.SessionService
	PostService *application.PostService

	Checks map[string]CheckFunc

	closers []func()
}

// New connects the configured backends and wires the services on top of them.
// Optional integrations (GCS, Elasticsearch, RabbitMQ) stay off when unconfigured.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger, Checks: map[string]CheckFunc{}}

	hasher, err := helpers.NewPasswordHasher(cfg.PasswordHashMethod, cfg.PasswordIterations)
	if err != nil {
		return nil, err
	}
	c.Hasher = hasher
	c.JWT = helpers.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL, cfg.AppName)
	c.Cookies = helpers.NewCookie(cfg.SessionCookie, cfg.CookieDomain, cfg.CookieSecure)

	switch cfg.StoreDriver {
	case DriverMemory:
		users := memory.NewUserRepository()
		c.Users = users
		c.Posts = memory.NewPostRepository(users)
		c.Sessions = memory.NewSessionRepository()
		logger.Warn("using in-memory store; data is lost on restart")
	case DriverPostgres:
		if err := c.connectStores(ctx); err != nil {
			c.Close()
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	var notifier application.Notifier
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		c.Rabbit = pub
		c.closers = append(c.closers, pub.Close)
		notifier = mq.NewWelcomeNotifier(pub, cfg.AppName, cfg.SiteURL)
	}

	var index application.PostIndex
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass, nil)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("elasticsearch: %w", err)
		}
		c.ES = es
		index = search.NewPostIndex(es, cfg.ESPostsIndex)
	}

	var images application.ImageStore
	if cfg.GCSBucket != "" {
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("gcs: %w", err)
		}
		c.GCS = client
		c.closers = append(c.closers, func() { _ = client.Close() })
		images = storage.NewImageStore(client, cfg.GCSBucket)
	}

	c.Credentials = application.NewCredentialService(c.Users, c.Hasher, notifier, logger)
	c.Auth = application.NewSessionService(c.Credentials, c.Users, c.Sessions, c.JWT, logger)
	c.PostService = application.NewPostService(c.Posts, index, images, logger)

	logger.WithFields(logrus.Fields{
		"store":   cfg.StoreDriver,
		"search":  index != nil,
		"images":  images != nil,
		"welcome": notifier != nil,
	}).Info("container ready")
	return c, nil
}

func (c *Container) connectStores(ctx context.Context) error {
	cfg := c.Config
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	c.Pool = pool
	c.closers = append(c.closers, pool.Close)

	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	c.Redis = rdb
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	c.Users = pginfra.NewUserRepository(pool)
	c.Posts = pginfra.NewPostRepository(pool)
	c.Sessions = redisstore.NewSessionRepository(rdb)

	c.Checks["postgres"] = pool.Ping
	c.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	return nil
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
