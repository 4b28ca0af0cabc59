package model

import (
	"fmt"
	"slices"
	"time"
)

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageStatus tracks the delivery of a locally created message.
type MessageStatus string

const (
	// StatusPending is an optimistic message the server has not confirmed yet.
	StatusPending MessageStatus = "pending"
	// StatusSent is a message the server has acknowledged.
	StatusSent MessageStatus = "sent"
	// StatusFailed is a message that could not be delivered.
	StatusFailed MessageStatus = "failed"
	// StatusError marks a synthetic assistant message standing in for a failed reply.
	StatusError MessageStatus = "error"
)

// Message stores a single message of a conversation.
//
// Client generated ids are time ordered UUIDs; server ids are the server's
// own (numeric) ids, so the two never collide as render keys.
type Message struct {
	ID       string        `json:"id"`
	ServerID string        `json:"server_id,omitempty"`
	Role     Role          `json:"role"`
	Content  string        `json:"content"`
	Status   MessageStatus `json:"status,omitempty"`
}

// KnowledgeItem is a document uploaded to a conversation.
type KnowledgeItem struct {
	ID       int64  `json:"id"`
	FileName string `json:"fileName"`
}

// Conversation is the authoritative client-side view of a conversation.
// ID is 0 while the conversation only exists locally.
type Conversation struct {
	ID        int64           `json:"id"`
	UUID      string          `json:"uuid"`
	Title     string          `json:"title"`
	UserID    *int64          `json:"user_id,omitempty"`
	Messages  []Message       `json:"messages"`
	Knowledge []KnowledgeItem `json:"knowledge"`
}

// Confirmed reports whether the server has assigned an id.
func (c *Conversation) Confirmed() bool { return c != nil && c.ID != 0 }

// Clone returns a deep copy safe to hand to views.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Messages = slices.Clone(c.Messages)
	if cp.Messages == nil {
		cp.Messages = []Message{}
	}
	cp.Knowledge = slices.Clone(c.Knowledge)
	if cp.Knowledge == nil {
		cp.Knowledge = []KnowledgeItem{}
	}
	if c.UserID != nil {
		uid := *c.UserID
		cp.UserID = &uid
	}
	return &cp
}

// Summary returns the sidebar entry for this conversation.
func (c *Conversation) Summary() ConversationSummary {
	return ConversationSummary{ID: c.ID, UUID: c.UUID, Title: c.Title}
}

// ConversationSummary is one entry of the conversation history list.
type ConversationSummary struct {
	ID       int64     `json:"id"`
	UUID     string    `json:"uuid"`
	Title    string    `json:"title"`
	CachedAt time.Time `json:"cached_at"`
}

// DisplayTitle falls back to a numbered label while the title is still
// being generated.
func (s ConversationSummary) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return fmt.Sprintf("Konversation %d", s.ID)
}

// StreamingState exists only while a completion body is being read.
type StreamingState struct {
	IsStreaming    bool     `json:"is_streaming"`
	PartialMessage *Message `json:"partial_message"`
}
