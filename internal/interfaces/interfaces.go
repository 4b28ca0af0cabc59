package interfaces

import (
	"context"
	"io"

	"flow-chat/frontend/internal/audio"
	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/service"
	"flow-chat/frontend/internal/transport"
	"flow-chat/frontend/internal/upload"
)

// Contracts the presentation layers (browser API and terminal client)
// depend on. The concrete services live in internal/service.

// ChatService is the conversation state machine.
type ChatService interface {
	View() service.View
	Subscribe() (<-chan service.Event, func())
	Submit(ctx context.Context, text string) error
	CancelStream()
	NewChat()
	SelectConversation(ctx context.Context, id int64) (service.View, error)
	SelectConversationByUUID(ctx context.Context, uuid string) (service.View, error)
	DeleteConversation(ctx context.Context, id int64) error
	ListConversations(ctx context.Context) ([]model.ConversationSummary, error)
	UploadKnowledge(ctx context.Context, f upload.File) (*model.KnowledgeItem, error)
	DeleteKnowledge(ctx context.Context, fileID int64) error
	EditMessage(ctx context.Context, messageID, content string) error
}

// AuthService logs the user in and out.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req *transport.RegisterRequest) (string, error)
	Logout(ctx context.Context)
	Authenticated(ctx context.Context) bool
}

// AudioService covers transcription and playback of replies.
type AudioService interface {
	Transcribe(ctx context.Context, recording io.Reader, mimeType string) (string, error)
	Toggle(ctx context.Context, messageID string) (audio.State, error)
	State() audio.State
	Current() (audio.Clip, bool)
	Ended(messageID string) audio.State
}

var (
	_ ChatService  = (*service.ChatService)(nil)
	_ AuthService  = (*service.AuthService)(nil)
	_ AudioService = (*service.AudioService)(nil)
)
