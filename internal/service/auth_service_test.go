package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flow-chat/frontend/internal/credentials"
	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/service"
	"flow-chat/frontend/internal/transport"
	"flow-chat/frontend/internal/transport/mocks"
)

func setupAuthService(t *testing.T) (*service.AuthService, *mocks.MockAPI, *credentials.Accessor) {
	api := mocks.NewMockAPI(t)
	creds := credentials.NewAccessor(credentials.NewMemoryStore(), time.Hour)
	return service.NewAuthService(api, creds), api, creds
}

func TestAuthService_Login(t *testing.T) {
	t.Run("Success stores the token", func(t *testing.T) {
		svc, api, creds := setupAuthService(t)
		api.On("Login", mock.Anything, "a@b.de", "pw").Return("tok-1", nil).Once()

		token, err := svc.Login(context.Background(), "a@b.de", "pw")

		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
		stored, ok := creds.Token(context.Background())
		assert.True(t, ok)
		assert.Equal(t, "tok-1", stored)
		assert.True(t, svc.Authenticated(context.Background()))
	})

	t.Run("Rejected credentials store nothing", func(t *testing.T) {
		svc, api, _ := setupAuthService(t)
		api.On("Login", mock.Anything, "a@b.de", "wrong").
			Return("", &app_errors.HTTPError{Op: "login", Status: 401, Detail: "Incorrect email or password"}).Once()

		_, err := svc.Login(context.Background(), "a@b.de", "wrong")

		assert.ErrorIs(t, err, app_errors.ErrAuth)
		assert.False(t, svc.Authenticated(context.Background()))
	})

	t.Run("Missing fields never reach the API", func(t *testing.T) {
		svc, _, _ := setupAuthService(t)

		_, err := svc.Login(context.Background(), " ", "pw")

		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}

func TestAuthService_RegisterAndLogout(t *testing.T) {
	svc, api, _ := setupAuthService(t)
	req := &transport.RegisterRequest{FirstName: "Ada", LastName: "L", Email: "ada@b.de", Password: "pw"}
	api.On("Register", mock.Anything, req).Return("tok-2", nil).Once()

	token, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.True(t, svc.Authenticated(context.Background()))

	svc.Logout(context.Background())
	assert.False(t, svc.Authenticated(context.Background()))
}
