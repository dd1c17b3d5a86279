package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/apex-supplements/store-api/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsersUnavailable = errors.New("users unavailable")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// FileUserRepository reads users from a JSON file on every lookup
type FileUserRepository struct {
	path string
}

// NewFileUserRepository creates a user repository backed by the file at path
func NewFileUserRepository(path string) *FileUserRepository {
	return &FileUserRepository{path: path}
}

// FindByCredentials returns the first user whose username and password both match exactly
func (r *FileUserRepository) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Errorf("%w: read %s: %w", ErrUsersUnavailable, filepath.Base(r.path), err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, errors.Errorf("%w: decode %s: %w", ErrUsersUnavailable, filepath.Base(r.path), err)
	}

	for _, u := range users {
		if u.Username == "" || u.Password == "" {
			continue
		}
		if u.Username == username && u.Password == password {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}
