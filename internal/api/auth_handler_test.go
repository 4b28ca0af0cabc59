package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flow-chat/frontend/internal/api"
	"flow-chat/frontend/internal/credentials"
	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/interfaces/mocks"
	"flow-chat/frontend/internal/transport"
)

func setupAuthHandler(t *testing.T) (*api.AuthHandler, *mocks.MockAuthService) {
	mockAuth := mocks.NewMockAuthService(t)
	policy := credentials.CookiePolicy{Production: true, TTL: 365 * 24 * time.Hour}
	return api.NewAuthHandler(mockAuth, policy), mockAuth
}

func tokenCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == credentials.TokenKey {
			return c
		}
	}
	return nil
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	t.Run("Success sets the token cookie", func(t *testing.T) {
		// ARRANGE
		handler, mockAuth := setupAuthHandler(t)
		mockAuth.On("Login", mock.Anything, "ada@example.com", "secret").Return("tok-1", nil).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"secret"}`))
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		cookie := tokenCookie(rr)
		require.NotNil(t, cookie)
		assert.Equal(t, "tok-1", cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.True(t, cookie.Secure)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.NotContains(t, rr.Body.String(), "tok-1")
	})

	t.Run("Wrong credentials answer 401", func(t *testing.T) {
		handler, mockAuth := setupAuthHandler(t)
		mockAuth.On("Login", mock.Anything, "ada@example.com", "nope").
			Return("", &app_errors.HTTPError{Op: "login", Status: 401, Detail: "Incorrect email or password"}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"nope"}`))
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, tokenCookie(rr))
	})

	t.Run("Invalid email never reaches the service", func(t *testing.T) {
		handler, _ := setupAuthHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"not-an-email","password":"x"}`))
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_HandleRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockAuth := setupAuthHandler(t)
		want := &transport.RegisterRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret"}
		mockAuth.On("Register", mock.Anything, want).Return("tok-2", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"secret"}`))
		rr := httptest.NewRecorder()
		handler.HandleRegister(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, tokenCookie(rr))
	})

	t.Run("Server detail is shown", func(t *testing.T) {
		handler, mockAuth := setupAuthHandler(t)
		mockAuth.On("Register", mock.Anything, mock.Anything).
			Return("", &app_errors.HTTPError{Op: "register", Status: 400, Detail: "Email already registered"}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
			strings.NewReader(`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"secret"}`))
		rr := httptest.NewRecorder()
		handler.HandleRegister(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, "Email already registered", decodeError(t, rr))
	})
}

func TestAuthHandler_HandleLogout(t *testing.T) {
	handler, mockAuth := setupAuthHandler(t)
	mockAuth.On("Logout", mock.Anything).Once()

	rr := httptest.NewRecorder()
	handler.HandleLogout(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	cookie := tokenCookie(rr)
	require.NotNil(t, cookie)
	assert.Equal(t, "", cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	t.Run("Missing cookie", func(t *testing.T) {
		mockAuth := mocks.NewMockAuthService(t)

		rr := httptest.NewRecorder()
		api.RequireAuth(mockAuth)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Stored token gone", func(t *testing.T) {
		mockAuth := mocks.NewMockAuthService(t)
		mockAuth.On("Authenticated", mock.Anything).Return(false).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil)
		req.AddCookie(&http.Cookie{Name: credentials.TokenKey, Value: "tok"})
		rr := httptest.NewRecorder()
		api.RequireAuth(mockAuth)(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Authenticated", func(t *testing.T) {
		mockAuth := mocks.NewMockAuthService(t)
		mockAuth.On("Authenticated", mock.Anything).Return(true).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil)
		req.AddCookie(&http.Cookie{Name: credentials.TokenKey, Value: "tok"})
		rr := httptest.NewRecorder()
		api.RequireAuth(mockAuth)(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
	})
}
