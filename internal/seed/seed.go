// Package seed resets the database and loads users from YAML.
package seed

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blockedby/starred-jobs/internal/models"
)

//go:embed users.yaml
var defaultUsers []byte

// UserSpec is one user entry in the seed file. A blank password is generated.
type UserSpec struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
}

// File is the seed document.
type File struct {
	Specs []UserSpec `yaml:"users"`
}

// UserCreator stores users.
type UserCreator interface {
	CreateBatch(ctx context.Context, users []models.User) error
}

// Resetter drops and recreates the schema.
type Resetter interface {
	Reset() error
}

// Load reads a seed file. An empty path selects the embedded default list.
func Load(path string) (*File, error) {
	data := defaultUsers
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a seed document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid seed yaml: %w", err)
	}

	seen := make(map[string]bool, len(f.Specs))
	for i, u := range f.Specs {
		if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
			return nil, fmt.Errorf("user %d: first_name and last_name are required", i+1)
		}
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("user %d: invalid email %q", i+1, u.Email)
		}
		if seen[email] {
			return nil, fmt.Errorf("user %d: duplicate email %q", i+1, u.Email)
		}
		seen[email] = true
	}
	return &f, nil
}

// Users converts the specs into models with salted password hashes.
// limit > 0 keeps only the first limit users.
func (f *File) Users(limit int) ([]models.User, error) {
	specs := f.Specs
	if limit > 0 && limit < len(specs) {
		specs = specs[:limit]
	}

	out := make([]models.User, 0, len(specs))
	for _, s := range specs {
		salt, err := randomHex(8)
		if err != nil {
			return nil, err
		}
		password := s.Password
		if password == "" {
			if password, err = randomHex(12); err != nil {
				return nil, err
			}
		}
		out = append(out, models.User{
			FirstName: strings.TrimSpace(s.FirstName),
			LastName:  strings.TrimSpace(s.LastName),
			Email:     strings.ToLower(strings.TrimSpace(s.Email)),
			Password:  HashPassword(password, salt),
			Salt:      salt,
		})
	}
	return out, nil
}

// HashPassword returns hex(sha256(salt + password)).
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// Run resets the schema and inserts the users. It returns how many were stored.
func Run(ctx context.Context, db Resetter, users UserCreator, f *File, limit int) (int, error) {
	list, err := f.Users(limit)
	if err != nil {
		return 0, err
	}
	if err := db.Reset(); err != nil {
		return 0, fmt.Errorf("reset database: %w", err)
	}
	if err := users.CreateBatch(ctx, list); err != nil {
		return 0, fmt.Errorf("insert users: %w", err)
	}
	return len(list), nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
