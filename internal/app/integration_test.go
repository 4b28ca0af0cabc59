package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flow-chat/frontend/internal/model"
)

// fakeRemote is a minimal chat API: login, create, completion, list.
func fakeRemote(t *testing.T) (*httptest.Server, *atomic.Int32) {
	var creates atomic.Int32
	r := chi.NewRouter()
	authorized := func(w http.ResponseWriter, req *http.Request) bool {
		if req.Header.Get("Authorization") != "Bearer tok-e2e" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Not authenticated"}`)
			return false
		}
		return true
	}

	r.Post("/v1/login", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(req.Body).Decode(&body)
		if body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"token":"tok-e2e"}`)
	})
	r.Post("/v1/conversation", func(w http.ResponseWriter, req *http.Request) {
		if !authorized(w, req) {
			return
		}
		creates.Add(1)
		var body struct {
			Messages []struct{ Role, Content string } `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "Hallo", body.Messages[0].Content)
		_, _ = io.WriteString(w, `{"id":7,"uuid":"u-7","title":"","messages":[{"id":70,"role":"user","content":"Hallo"}]}`)
	})
	r.Post("/v1/conversation/{id}/completion", func(w http.ResponseWriter, req *http.Request) {
		if !authorized(w, req) {
			return
		}
		assert.Equal(t, "7", chi.URLParam(req, "id"))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "Hello ")
		w.(http.Flusher).Flush()
		_, _ = io.WriteString(w, "world")
	})
	r.Get("/v1/conversation", func(w http.ResponseWriter, req *http.Request) {
		if !authorized(w, req) {
			return
		}
		_, _ = io.WriteString(w, `[{"id":7,"uuid":"u-7","title":"Greeting"},{"id":3,"uuid":"u-3","title":""}]`)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &creates
}

func TestEndToEnd_LoginChatAndOfflineList(t *testing.T) {
	remote, creates := fakeRemote(t)
	a, err := NewApp(testConfig(t, remote.URL+"/v1"))
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()
	handler := a.Server.Handler

	// Log in and keep the cookie.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"pw"}`)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	withCookie := func(req *http.Request) *http.Request {
		for _, c := range cookies {
			req.AddCookie(c)
		}
		return req
	}

	// First message creates the conversation and streams the reply.
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, withCookie(httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"content":"Hallo"}`))))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "event: done\n")
	assert.NotContains(t, rr.Body.String(), "event: error\n")
	assert.Equal(t, int32(1), creates.Load())

	view := a.Chat.View()
	require.NotNil(t, view.Conversation)
	assert.Equal(t, int64(7), view.Conversation.ID)
	require.Len(t, view.Conversation.Messages, 2)
	assert.Equal(t, "Hallo", view.Conversation.Messages[0].Content)
	assert.Equal(t, model.StatusSent, view.Conversation.Messages[0].Status)
	assert.Equal(t, "Hello world", view.Conversation.Messages[1].Content)

	// Listing refreshes the cache.
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, withCookie(httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)))
	require.Equal(t, http.StatusOK, rr.Code)
	var online []model.ConversationSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &online))
	require.Len(t, online, 2)
	assert.True(t, online[0].CachedAt.IsZero())

	// With the remote gone the cached list is served.
	remote.Close()
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, withCookie(httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var offline []model.ConversationSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &offline))
	require.Len(t, offline, 2)
	assert.Equal(t, "Greeting", offline[0].Title)
	assert.Equal(t, "Konversation 3", offline[1].DisplayTitle())
	assert.False(t, offline[0].CachedAt.IsZero())
}

func TestEndToEnd_WrongPassword(t *testing.T) {
	remote, _ := fakeRemote(t)
	a, err := NewApp(testConfig(t, remote.URL+"/v1"))
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()

	rr := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, rr.Result().Cookies())

	rr = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
