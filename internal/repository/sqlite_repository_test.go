package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/repository"
)

func setupCache(t *testing.T) (repository.ConversationCache, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSQLiteConversationCache(db), mock
}

func TestSQLiteConversationCache_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	convs := []model.ConversationSummary{{ID: 2, UUID: "b", Title: "Newest"}, {ID: 1, UUID: "a"}}

	t.Run("Success", func(t *testing.T) {
		cache, mock := setupCache(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM conversation_cache").WillReturnResult(sqlmock.NewResult(0, 3))
		insert := regexp.QuoteMeta("INSERT INTO conversation_cache (id, uuid, title, position, cached_at)")
		mock.ExpectExec(insert).WithArgs(int64(2), "b", "Newest", 0, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectExec(insert).WithArgs(int64(1), "a", "", 1, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, cache.ReplaceAll(ctx, convs))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert failure rolls back", func(t *testing.T) {
		cache, mock := setupCache(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM conversation_cache").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO conversation_cache").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := cache.ReplaceAll(ctx, convs)
		assert.ErrorContains(t, err, "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLiteConversationCache_List(t *testing.T) {
	cache, mock := setupCache(t)
	cachedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "uuid", "title", "cached_at"}).
		AddRow(int64(2), "b", "Newest", cachedAt).
		AddRow(int64(1), "a", "", cachedAt)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, uuid, title, cached_at FROM conversation_cache ORDER BY position ASC")).WillReturnRows(rows)

	convs, err := cache.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.ConversationSummary{
		{ID: 2, UUID: "b", Title: "Newest", CachedAt: cachedAt},
		{ID: 1, UUID: "a", CachedAt: cachedAt},
	}, convs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteConversationCache_UpsertAndDelete(t *testing.T) {
	cache, mock := setupCache(t)
	mock.ExpectExec("INSERT INTO conversation_cache .* ON CONFLICT\\(id\\) DO UPDATE").
		WithArgs(int64(9), "u-9", "Fresh", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM conversation_cache WHERE id = ?")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, cache.Upsert(context.Background(), model.ConversationSummary{ID: 9, UUID: "u-9", Title: "Fresh"}))
	require.NoError(t, cache.Delete(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteCredentialStore(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := repository.NewSQLiteCredentialStore(db)

	t.Run("Missing key is not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT value, expires_at FROM credentials").
			WithArgs("token").
			WillReturnRows(sqlmock.NewRows([]string{"value", "expires_at"}))

		_, _, err := store.Get(ctx, "token")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Set then Get", func(t *testing.T) {
		expires := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectExec("INSERT INTO credentials").
			WithArgs("token", "abc", expires).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT value, expires_at FROM credentials").
			WithArgs("token").
			WillReturnRows(sqlmock.NewRows([]string{"value", "expires_at"}).AddRow("abc", expires))

		require.NoError(t, store.Set(ctx, "token", "abc", expires))
		value, gotExpires, err := store.Get(ctx, "token")

		require.NoError(t, err)
		assert.Equal(t, "abc", value)
		assert.Equal(t, expires, gotExpires)
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM credentials").WithArgs("token").WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, store.Delete(ctx, "token"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
