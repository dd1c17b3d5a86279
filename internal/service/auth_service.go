package service

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/apex-supplements/store-api/internal/auth"
	"github.com/apex-supplements/store-api/internal/models"
	"github.com/apex-supplements/store-api/internal/repository"
)

// Session is what a successful login hands to the client: the bearer token,
// the user's public profile and the catalog to cache locally.
type Session struct {
	Token string          `json:"token"`
	User  models.Profile  `json:"user"`
	Store *models.Catalog `json:"store"`
}

// AuthService issues credentials for known users.
type AuthService struct {
	users   repository.UserRepository
	catalog repository.CatalogRepository
	tokens  auth.TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, catalog repository.CatalogRepository, tokens auth.TokenIssuer) *AuthService {
	return &AuthService{
		users:   users,
		catalog: catalog,
		tokens:  tokens,
	}
}

// Login checks username and password and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, errors.Wrap(err, "find user")
	}

	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	return &Session{
		Token: s.tokens.Issue(user.Username),
		User:  user.Profile(),
		Store: catalog,
	}, nil
}
