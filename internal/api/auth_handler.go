package api

import (
	"log/slog"
	"net/http"
	"time"

	"flow-chat/frontend/internal/credentials"
	"flow-chat/frontend/internal/interfaces"
	"flow-chat/frontend/internal/transport"
)

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required" example:"secret"`
}

// RegisterRequest is the signup form.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100" example:"Ada"`
	LastName  string `json:"lastName" validate:"required,max=100" example:"Lovelace"`
	Email     string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password  string `json:"password" validate:"required" example:"secret"`
}

// AuthHandler logs the browser in and out. The token is handed to the
// browser only as an HttpOnly cookie.
type AuthHandler struct {
	auth    interfaces.AuthService
	cookies credentials.CookiePolicy
	now     func() time.Time
}

func NewAuthHandler(auth interfaces.AuthService, cookies credentials.CookiePolicy) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies, now: time.Now}
}

// HandleLogin godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}
	http.SetCookie(w, h.cookies.Cookie(token, h.now()))
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleRegister godoc
// @Summary      Create an account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Account"
// @Success      201      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	token, err := h.auth.Register(r.Context(), &transport.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	http.SetCookie(w, h.cookies.Cookie(token, h.now()))
	respondWithJSON(w, http.StatusCreated, StatusResponse{Status: "ok"})
}

// HandleLogout godoc
// @Summary      Log out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	http.SetCookie(w, h.cookies.Expired())
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// RequireAuth rejects requests without the token cookie, or when no usable
// token is stored any more.
func RequireAuth(auth interfaces.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(credentials.TokenKey)
			if err != nil || cookie.Value == "" || !auth.Authenticated(r.Context()) {
				slog.Debug("Rejecting unauthenticated request", "path", r.URL.Path)
				respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Please log in."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
