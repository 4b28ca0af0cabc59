package repository

import (
	"fmt"

	app_errors "flow-chat/frontend/internal/errors"
)

// ErrNotFound is returned when a lookup for a single key finds no rows. It
// matches app_errors.ErrNotFound so callers above the repository do not need
// to know about sql.ErrNoRows or redis.Nil.
var ErrNotFound = fmt.Errorf("repository: %w", app_errors.ErrNotFound)
