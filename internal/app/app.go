package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"flow-chat/frontend/internal/api"
	"flow-chat/frontend/internal/audio"
	"flow-chat/frontend/internal/config"
	"flow-chat/frontend/internal/credentials"
	"flow-chat/frontend/internal/database"
	"flow-chat/frontend/internal/repository"
	"flow-chat/frontend/internal/service"
	"flow-chat/frontend/internal/stream"
	"flow-chat/frontend/internal/transport"
	"flow-chat/frontend/internal/upload"
)

// App holds the wired front-end.
type App struct {
	DB     *sql.DB
	Redis  *redis.Client
	Chat   *service.ChatService
	Auth   *service.AuthService
	Audio  *service.AudioService
	Server *http.Server
}

var logLevel = new(slog.LevelVar)

// NewApp wires stores, transport, services and the HTTP server from cfg.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a := &App{DB: db}

	cache, err := a.conversationCache(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	creds := credentials.NewAccessor(repository.NewSQLiteCredentialStore(db), cfg.TokenTTL)
	client := transport.NewClient(transport.Options{
		BaseURL:        cfg.APIURL,
		AuthURL:        cfg.AuthURL,
		Timeout:        cfg.RequestTimeout,
		SendEmptyTitle: cfg.SendEmptyTitle,
		Voice:          cfg.TTSVoice,
	}, creds)

	a.Chat = service.NewChatService(client, &stream.Consumer{}, cache, service.ChatOptions{
		Summarize: cfg.SummarizeMode,
		Upload:    upload.Policy{AcceptedType: cfg.AcceptedUploadType, MaxBytes: cfg.MaxUploadBytes},
	})
	a.Auth = service.NewAuthService(client, creds)

	sink := audio.NewMemorySink()
	player := audio.NewPlayer(client, sink)
	player.OnChange(func(s audio.State) {
		slog.Debug("Audio state changed", "message_id", s.MessageID, "status", s.Status)
	})
	a.Audio = service.NewAudioService(client, player, sink, a.Chat)

	router := api.NewRouter(api.Handlers{
		Chat:        api.NewChatHandler(a.Chat, cfg.MaxUploadBytes),
		Auth:        api.NewAuthHandler(a.Auth, credentials.CookiePolicy{Production: cfg.Production(), TTL: cfg.TokenTTL}),
		Audio:       api.NewAudioHandler(a.Audio),
		RequireAuth: api.RequireAuth(a.Auth),
		FrontendDir: cfg.FrontendDir,
	})

	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return a, nil
}

func (a *App) conversationCache(cfg *config.Config) (repository.ConversationCache, error) {
	if cfg.CacheBackend != "redis" {
		return repository.NewSQLiteConversationCache(a.DB), nil
	}
	a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	slog.Info("Using redis conversation cache", "addr", cfg.RedisAddr)
	return repository.NewRedisConversationCache(a.Redis, "flowchat"), nil
}

// Close stops in-flight work and releases the stores.
func (a *App) Close() error {
	if a.Audio != nil {
		a.Audio.Stop()
	}
	if a.Chat != nil {
		a.Chat.Close()
	}
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

// Run starts the browser front-end server and blocks until it stops.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	SetupLogger(os.Stdout, cfg.LogLevel)
	logConfigSource()
	config.Watch(func(c *config.Config) {
		SetLogLevel(c.LogLevel)
		slog.Info("Configuration reloaded", "log_level", c.LogLevel)
	})

	a, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to close resources", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort, "api_url", cfg.APIURL)
		errCh <- a.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}
	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

// SetupLogger installs a JSON logger writing to w as the default logger.
func SetupLogger(w io.Writer, level string) {
	SetLogLevel(level)
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// SetLogLevel changes the level of the logger installed by SetupLogger.
func SetLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel.Set(slog.LevelDebug)
	case "WARN":
		logLevel.Set(slog.LevelWarn)
	case "ERROR":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}
}
