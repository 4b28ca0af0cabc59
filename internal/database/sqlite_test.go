package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flow-chat/frontend/internal/database"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chat.db")

	db, err := database.InitDB(path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"credentials", "conversation_cache"} {
		var name string
		err := db.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}

	// Running again is a no-op.
	assert.NoError(t, database.Migrate(db))
}
