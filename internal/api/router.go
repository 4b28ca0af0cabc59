package api

import (
	"net/http"
	"time"

	// Registers the swagger spec.
	_ "flow-chat/frontend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Chat  *ChatHandler
	Auth  *AuthHandler
	Audio *AudioHandler
	// RequireAuth guards every route except login, register, health and docs.
	RequireAuth func(http.Handler) http.Handler
	// FrontendDir holds the built browser assets; nothing is served when empty.
	FrontendDir string
}

// NewRouter creates the chi router with all of the front-end's routes.
func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Post("/auth/login", h.Auth.HandleLogin)
			r.Post("/auth/register", h.Auth.HandleRegister)
			r.Post("/auth/logout", h.Auth.HandleLogout)
		})

		r.Group(func(r chi.Router) {
			if h.RequireAuth != nil {
				r.Use(h.RequireAuth)
			}

			// JSON routes get a request timeout.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(60 * time.Second))

				// --- Chat ---
				r.Get("/chat", h.Chat.GetView)
				r.Patch("/chat/messages/{messageID}", h.Chat.HandleEditMessage)
				r.Post("/chat/new", h.Chat.HandleNewChat)
				r.Post("/chat/cancel", h.Chat.HandleCancel)

				// --- Conversations ---
				r.Get("/conversations", h.Chat.GetConversations)
				r.Post("/conversations/{conversationID}/select", h.Chat.HandleSelectConversation)
				r.Post("/conversations/uuid/{uuid}/select", h.Chat.HandleSelectConversationByUUID)
				r.Delete("/conversations/{conversationID}", h.Chat.HandleDeleteConversation)

				// --- Knowledge ---
				r.Post("/knowledge", h.Chat.HandleUploadKnowledge)
				r.Delete("/knowledge/{fileID}", h.Chat.HandleDeleteKnowledge)

				// --- Audio ---
				r.Post("/audio/transcribe", h.Audio.HandleTranscribe)
				r.Post("/audio/messages/{messageID}/toggle", h.Audio.HandleToggle)
				r.Get("/audio/current", h.Audio.HandleCurrent)
				r.Post("/audio/ended", h.Audio.HandleEnded)
			})

			// Streaming routes hold the connection open and must not time out.
			r.Group(func(r chi.Router) {
				r.Get("/chat/events", h.Chat.HandleEvents)
				r.Post("/chat/messages", h.Chat.HandleSubmit)
			})
		})
	})

	if h.FrontendDir != "" {
		fileServer := http.FileServer(http.Dir(h.FrontendDir))
		r.Handle("/*", http.StripPrefix("/", fileServer))
	}

	return r
}
