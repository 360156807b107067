package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/coursenet/config"
	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/container"
	pginfra "github.com/oksasatya/coursenet/internal/infrastructure/postgres"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	if cfg.StoreDriver == container.DriverPostgres {
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	// welcome mail is pointless for a demo account
	cfg.MailSendEnabled = false
	app, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	email := "demo@coursenet.local"
	password := "password123"
	name := "Demo Author"

	user, err := app.Credentials.Register(ctx, name, email, password)
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		user, err = app.Credentials.FindByEmail(ctx, email)
		if err != nil {
			log.Fatalf("failed to load demo user: %v", err)
		}
		fmt.Printf("demo user already present: id=%d email=%s\n", user.ID, email)
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	default:
		fmt.Printf("seeded user: id=%d email=%s name=%s password=%s\n", user.ID, email, name, password)
	}

	existing, err := app.PostService.ListByAuthor(ctx, user.ID)
	if err != nil {
		log.Fatalf("failed to list demo posts: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("demo user already has %d post(s); nothing to do\n", len(existing))
		return
	}

	post, err := app.PostService.Create(ctx, application.CreatePostInput{
		AuthorID:   user.ID,
		AuthorName: user.Name,
		Title:      "Hello, world",
		Subtitle:   "The first post on this blog",
		ImgURL:     "https://images.unsplash.com/photo-1499750310107-5fef28a66643",
		Content:    "<p>Welcome! Register an account to write your own posts.</p>",
	})
	if err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%d title=%q\n", post.ID, post.Title)
}
