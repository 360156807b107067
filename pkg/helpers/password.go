package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	MethodPBKDF2 = "pbkdf2"
	MethodBcrypt = "bcrypt"

	// DefaultPBKDF2Iterations matches werkzeug's generate_password_hash default.
	DefaultPBKDF2Iterations = 600000
	// SaltLength is the number of salt characters in pbkdf2 hashes.
	SaltLength = 8

	saltChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrUnknownHashMethod = errors.New("unknown password hash method")

// PasswordHasher produces salted one-way password hashes.
//
// pbkdf2 hashes use the werkzeug encoding "pbkdf2:sha256:<iterations>$<salt>$<hex digest>",
// so accounts created by older deployments keep working. bcrypt hashes use the standard "$2a$" encoding.
type PasswordHasher struct {
	Method     string
	Iterations int
}

func NewPasswordHasher(method string, iterations int) (*PasswordHasher, error) {
	switch method {
	case MethodPBKDF2:
		if iterations <= 0 {
			iterations = DefaultPBKDF2Iterations
		}
	case MethodBcrypt:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashMethod, method)
	}
	return &PasswordHasher{Method: method, Iterations: iterations}, nil
}

// Hash hashes the plain text password with the configured method
func (h *PasswordHasher) Hash(plain string) (string, error) {
	if h.Method == MethodBcrypt {
		return HashPassword(plain)
	}
	salt, err := genSalt(SaltLength)
	if err != nil {
		return "", err
	}
	sum := pbkdf2.Key([]byte(plain), []byte(salt), h.Iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", h.Iterations, salt, hex.EncodeToString(sum)), nil
}

// Verify compares a stored hash (pbkdf2 or bcrypt) with a plain password in constant time.
func (h *PasswordHasher) Verify(hash, plain string) bool {
	return CompareHashAndPassword(hash, plain)
}

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a pbkdf2 or bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	return comparePBKDF2(hash, plain)
}

func comparePBKDF2(encoded, plain string) bool {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method := strings.Split(parts[0], ":")
	if len(method) != 3 || method[0] != "pbkdf2" || method[1] != "sha256" {
		return false
	}
	iterations, err := strconv.Atoi(method[2])
	if err != nil || iterations <= 0 {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(plain), []byte(parts[1]), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func genSalt(n int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(saltChars)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(saltChars[idx.Int64()])
	}
	return sb.String(), nil
}
