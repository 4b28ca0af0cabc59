// Package transport is the typed client for the remote conversation API.
//
// Every authenticated operation needs a token from the credential provider
// and fails with ErrAuth before any request is made when there is none.
// Non-success answers become *HTTPError, transport failures *NetworkError,
// and success answers missing required fields ErrMalformedResponse.
package transport

import (
	"context"
	"io"

	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/upload"
)

// API defines the interface for the remote conversation service.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req *RegisterRequest) (string, error)

	CreateConversation(ctx context.Context, initialText *string) (*model.Conversation, error)
	AddMessage(ctx context.Context, conversationID int64, message model.Message) (string, error)
	EditMessage(ctx context.Context, conversationID int64, messageID, content string) error
	FetchConversation(ctx context.Context, conversationID int64) (*model.Conversation, error)
	FetchConversationByUUID(ctx context.Context, uuid string) (*model.Conversation, error)
	FetchConversations(ctx context.Context) ([]model.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID int64) error

	RequestCompletion(ctx context.Context, conversationID int64) (*Stream, error)
	SummarizeConversation(ctx context.Context, conversationID int64) error

	UploadKnowledge(ctx context.Context, conversationID int64, file upload.File) (*model.KnowledgeItem, error)
	DeleteKnowledge(ctx context.Context, conversationID, fileID int64) error

	TranscribeAudio(ctx context.Context, audio io.Reader, mimeType string) (string, error)
	SynthesizeAudio(ctx context.Context, text string) (*Stream, error)
}

// RegisterRequest is the body of the signup call.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Stream is an open response body delivered incrementally. The caller owns
// Body and must close it.
type Stream struct {
	Body        io.ReadCloser
	ContentType string
}
