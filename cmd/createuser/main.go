package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/oksasatya/coursenet/config"
	"github.com/oksasatya/coursenet/internal/application"
	"github.com/oksasatya/coursenet/internal/container"
	"github.com/oksasatya/coursenet/pkg/helpers"
)

// createuser registers an account from the terminal without going through the web form.
func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.StoreDriver != container.DriverPostgres {
		log.Fatalf("createuser needs STORE_DRIVER=postgres, got %q", cfg.StoreDriver)
	}
	logger := helpers.NewLoggerTo(os.Stderr, cfg.AppName, cfg.Env)

	in := bufio.NewReader(os.Stdin)
	if *name == "" {
		*name = prompt(in, "Name: ")
	}
	if *email == "" {
		*email = prompt(in, "Email: ")
	}
	if *name == "" || *email == "" {
		log.Fatal("name and email are required")
	}
	password, err := readPassword(in, "Password: ")
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	confirm, err := readPassword(in, "Repeat password: ")
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	if password != confirm {
		log.Fatal("passwords do not match")
	}
	if len(password) < 6 {
		log.Fatal("password must be at least 6 characters long")
	}

	ctx := context.Background()
	app, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	u, err := app.Credentials.Register(ctx, *name, *email, password)
	if errors.Is(err, application.ErrEmailTaken) {
		log.Fatalf("%s is already registered", *email)
	}
	if err != nil {
		log.Fatalf("register: %v", err)
	}
	fmt.Printf("created user id=%d email=%s\n", u.ID, u.Email)
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func readPassword(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	defer fmt.Println()
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
