package credentials

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ *MemoryStore }

func (failingStore) Delete(context.Context, string) error { return errors.New("disk full") }

func TestAccessor_SaveAndToken(t *testing.T) {
	ctx := context.Background()
	acc := NewAccessor(NewMemoryStore(), time.Hour)

	_, ok := acc.Token(ctx)
	assert.False(t, ok, "empty store has no token")

	require.NoError(t, acc.Save(ctx, "tok-1"))
	token, ok := acc.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)

	acc.Clear(ctx)
	_, ok = acc.Token(ctx)
	assert.False(t, ok)
}

func TestAccessor_ExpiredTokenIsAbsent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	acc := NewAccessor(NewMemoryStore(), time.Minute)
	acc.now = func() time.Time { return now }
	require.NoError(t, acc.Save(ctx, "tok"))

	now = now.Add(59 * time.Second)
	_, ok := acc.Token(ctx)
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = acc.Token(ctx)
	assert.False(t, ok)
}

func TestAccessor_ClearIgnoresStoreFailure(t *testing.T) {
	acc := NewAccessor(failingStore{MemoryStore: NewMemoryStore()}, time.Hour)

	assert.NotPanics(t, func() { acc.Clear(context.Background()) })
}

func TestParseToken(t *testing.T) {
	testCases := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "plain", raw: "abc.def", want: "abc.def", wantOK: true},
		{name: "surrounding space", raw: "  abc \n", want: "abc", wantOK: true},
		{name: "empty", raw: "", wantOK: false},
		{name: "inner space", raw: "abc def", wantOK: false},
		{name: "control char", raw: "abc\x00", wantOK: false},
		{name: "json object", raw: `{"token":"xyz"}`, want: "xyz", wantOK: true},
		{name: "json first string in key order", raw: `{"b":"second","a":"first","n":1}`, want: "first", wantOK: true},
		{name: "json without strings", raw: `{"n":1}`, wantOK: false},
		{name: "broken json", raw: `{"token":`, wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseToken(tc.raw)

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCookiePolicy(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("development", func(t *testing.T) {
		c := CookiePolicy{TTL: 24 * time.Hour}.Cookie("tok", now)

		assert.Equal(t, TokenKey, c.Name)
		assert.Equal(t, "tok", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, now.Add(24*time.Hour), c.Expires)
		assert.Equal(t, 86400, c.MaxAge)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		assert.False(t, c.Secure)
	})

	t.Run("production is secure", func(t *testing.T) {
		p := CookiePolicy{Production: true, TTL: time.Hour}

		assert.True(t, p.Cookie("tok", now).Secure)
		assert.True(t, p.Expired().Secure)
	})

	t.Run("expired", func(t *testing.T) {
		c := CookiePolicy{}.Expired()

		assert.Equal(t, TokenKey, c.Name)
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	})
}
