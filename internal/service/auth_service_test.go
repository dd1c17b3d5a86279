package service

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-supplements/store-api/internal/auth"
	"github.com/apex-supplements/store-api/internal/models"
	"github.com/apex-supplements/store-api/internal/repository"
)

type stubUsers struct {
	users []models.User
	err   error
}

func (s *stubUsers) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func TestAuthService_Login(t *testing.T) {
	users := &stubUsers{users: []models.User{
		{Username: "ana", Password: "1234", Name: "Ana García"},
		{Username: "luis", Password: "abcd"},
	}}
	svc := NewAuthService(users, &stubCatalog{catalog: testCatalog()}, auth.NewStaticToken(testToken))

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantName string
	}{
		{name: "valid user", username: "ana", password: "1234", wantName: "Ana García"},
		{name: "surrounding spaces are trimmed", username: "  ana ", password: " 1234 ", wantName: "Ana García"},
		{name: "name falls back to username", username: "luis", password: "abcd", wantName: "luis"},
		{name: "wrong password", username: "ana", password: "4321", wantErr: ErrInvalidLogin},
		{name: "unknown user", username: "eva", password: "1234", wantErr: ErrInvalidLogin},
		{name: "missing password", username: "ana", password: "   ", wantErr: ErrMissingCredentials},
		{name: "missing username", username: "", password: "1234", wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testToken, session.Token)
			assert.Equal(t, tt.wantName, session.User.Name)
			assert.Len(t, session.Store.Products, 4)
		})
	}
}

func TestAuthService_LoginStoreFailure(t *testing.T) {
	usersErr := errors.Join(repository.ErrUsersUnavailable, errors.New("missing file"))
	svc := NewAuthService(&stubUsers{err: usersErr}, &stubCatalog{catalog: testCatalog()}, auth.NewStaticToken(testToken))

	_, err := svc.Login(context.Background(), "ana", "1234")

	require.ErrorIs(t, err, repository.ErrUsersUnavailable)
	assert.Equal(t, ClassFatal, Classify(err))
}
