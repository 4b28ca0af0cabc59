package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"flow-chat/frontend/internal/model"
)

type sqliteConversationCache struct {
	db *sql.DB
}

func NewSQLiteConversationCache(db *sql.DB) ConversationCache {
	return &sqliteConversationCache{db: db}
}

// ReplaceAll uses a transaction so a failed refresh leaves the previous list intact.
func (r *sqliteConversationCache) ReplaceAll(ctx context.Context, convs []model.ConversationSummary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM conversation_cache"); err != nil {
		return fmt.Errorf("could not clear conversation cache: %w", err)
	}

	query := "INSERT INTO conversation_cache (id, uuid, title, position, cached_at) VALUES (?, ?, ?, ?, ?)"
	now := time.Now().UTC()
	for i, c := range convs {
		if _, err := tx.ExecContext(ctx, query, c.ID, c.UUID, c.Title, i, now); err != nil {
			return fmt.Errorf("could not cache conversation %d: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

func (r *sqliteConversationCache) List(ctx context.Context) ([]model.ConversationSummary, error) {
	query := "SELECT id, uuid, title, cached_at FROM conversation_cache ORDER BY position ASC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convs := []model.ConversationSummary{}
	for rows.Next() {
		var c model.ConversationSummary
		if err := rows.Scan(&c.ID, &c.UUID, &c.Title, &c.CachedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func (r *sqliteConversationCache) Upsert(ctx context.Context, c model.ConversationSummary) error {
	query := `
		INSERT INTO conversation_cache (id, uuid, title, position, cached_at)
		VALUES (?, ?, ?, (SELECT COALESCE(MIN(position), 0) - 1 FROM conversation_cache), ?)
		ON CONFLICT(id) DO UPDATE SET uuid = excluded.uuid, title = excluded.title, cached_at = excluded.cached_at
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UUID, c.Title, time.Now().UTC())
	return err
}

func (r *sqliteConversationCache) Delete(ctx context.Context, conversationID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM conversation_cache WHERE id = ?", conversationID)
	return err
}

// SQLiteCredentialStore keeps the credential token across restarts. It
// satisfies credentials.Store.
type SQLiteCredentialStore struct {
	db *sql.DB
}

func NewSQLiteCredentialStore(db *sql.DB) *SQLiteCredentialStore {
	return &SQLiteCredentialStore{db: db}
}

func (s *SQLiteCredentialStore) Get(ctx context.Context, key string) (string, time.Time, error) {
	row := s.db.QueryRowContext(ctx, "SELECT value, expires_at FROM credentials WHERE key = ?", key)
	var value string
	var expiresAt sql.NullTime
	if err := row.Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, ErrNotFound
		}
		return "", time.Time{}, err
	}
	return value, expiresAt.Time, nil
}

func (s *SQLiteCredentialStore) Set(ctx context.Context, key, value string, expiresAt time.Time) error {
	query := `
		INSERT INTO credentials (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`
	_, err := s.db.ExecContext(ctx, query, key, value, expiresAt.UTC())
	return err
}

func (s *SQLiteCredentialStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM credentials WHERE key = ?", key)
	return err
}
