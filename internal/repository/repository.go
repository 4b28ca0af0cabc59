package repository

import (
	"context"

	"flow-chat/frontend/internal/model"
)

// ConversationCache stores the last known conversation list, in server
// order, so the history sidebar can be shown when the remote API is
// unreachable. Implementations hold summaries only, never transcripts.
type ConversationCache interface {
	// ReplaceAll swaps the whole cached list for convs, keeping their order.
	ReplaceAll(ctx context.Context, convs []model.ConversationSummary) error
	List(ctx context.Context) ([]model.ConversationSummary, error)
	// Upsert puts a new entry at the top or updates an existing one in place.
	Upsert(ctx context.Context, conv model.ConversationSummary) error
	Delete(ctx context.Context, conversationID int64) error
}
