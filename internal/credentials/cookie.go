package credentials

import (
	"net/http"
	"time"
)

// CookiePolicy describes how the token cookie is issued to the browser:
// root path, strict same-site, Secure in production.
type CookiePolicy struct {
	Production bool
	TTL        time.Duration
}

// Cookie builds the cookie carrying token.
func (p CookiePolicy) Cookie(token string, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     TokenKey,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(p.TTL),
		MaxAge:   int(p.TTL.Seconds()),
		Secure:   p.Production,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// Expired builds a cookie that makes the browser drop the token.
func (p CookiePolicy) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     TokenKey,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   p.Production,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
