package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/interfaces"
	"flow-chat/frontend/internal/service"
	"flow-chat/frontend/internal/upload"
)

// multipartOverhead is allowed on top of the file size limit for the
// multipart framing and other form fields.
const multipartOverhead = 1 << 20

// SubmitRequest is the body of a new user turn.
type SubmitRequest struct {
	Content string `json:"content" validate:"required" example:"Hallo"`
}

// EditRequest replaces the content of a confirmed message.
type EditRequest struct {
	Content string `json:"content" validate:"required" example:"Corrected question"`
}

// ChatHandler exposes the conversation state machine.
type ChatHandler struct {
	chat           interfaces.ChatService
	maxUploadBytes int64
}

func NewChatHandler(chat interfaces.ChatService, maxUploadBytes int64) *ChatHandler {
	return &ChatHandler{chat: chat, maxUploadBytes: maxUploadBytes}
}

// GetView godoc
// @Summary      Current chat view
// @Description  Returns the active conversation, streaming state and state machine state.
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  service.View
// @Router       /v1/chat [get]
func (h *ChatHandler) GetView(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.chat.View())
}

// HandleEvents godoc
// @Summary      Subscribe to session events
// @Description  Streams every state transition as a Server-Sent Event until the client disconnects.
// @Tags         Chat
// @Produce      text/event-stream
// @Success      200  {object}  service.Event
// @Router       /v1/chat/events [get]
func (h *ChatHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	events, stop := h.chat.Subscribe()
	defer stop()

	setStreamHeaders(w)
	if err := writeStreamEvent(w, "view", h.chat.View()); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			slog.Debug("Event subscriber disconnected")
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeStreamEvent(w, string(ev.Kind), ev); err != nil {
				slog.Warn("Stopping event stream", "error", err)
				return
			}
		}
	}
}

// HandleSubmit godoc
// @Summary      Submit a message
// @Description  Sends a user turn and streams session events until the reply settles. A conversation is created first when none is active.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      SubmitRequest  true  "Message"
// @Success      200      {object}  service.Event
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /v1/chat/messages [post]
func (h *ChatHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if h.chat.View().Busy {
		respondWithError(w, fmt.Errorf("%w: a reply is still in progress", app_errors.ErrConflict))
		return
	}

	events, stop := h.chat.Subscribe()
	defer stop()

	done := make(chan error, 1)
	go func() { done <- h.chat.Submit(r.Context(), req.Content) }()

	setStreamHeaders(w)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeStreamEvent(w, string(ev.Kind), ev); err != nil {
				slog.Warn("Client left during reply", "error", err)
				return
			}
		case err := <-done:
			h.drain(w, events)
			if err != nil {
				sendStreamError(w, err)
				return
			}
			_ = writeStreamEvent(w, "done", h.chat.View())
			return
		}
	}
}

// drain forwards events already queued when the turn settled.
func (h *ChatHandler) drain(w http.ResponseWriter, events <-chan service.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeStreamEvent(w, string(ev.Kind), ev); err != nil {
				return
			}
		default:
			return
		}
	}
}

// HandleEditMessage godoc
// @Summary      Edit a message
// @Description  Changes a server-confirmed message and reloads the conversation.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        messageID  path      string       true  "Message ID"
// @Param        request    body      EditRequest  true  "New content"
// @Success      200        {object}  service.View
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /v1/chat/messages/{messageID} [patch]
func (h *ChatHandler) HandleEditMessage(w http.ResponseWriter, r *http.Request) {
	var req EditRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.chat.EditMessage(r.Context(), chi.URLParam(r, "messageID"), req.Content); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.chat.View())
}

// HandleNewChat godoc
// @Summary      Start a new chat
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  service.View
// @Router       /v1/chat/new [post]
func (h *ChatHandler) HandleNewChat(w http.ResponseWriter, r *http.Request) {
	h.chat.NewChat()
	respondWithJSON(w, http.StatusOK, h.chat.View())
}

// HandleCancel godoc
// @Summary      Stop the reply in progress
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  service.View
// @Router       /v1/chat/cancel [post]
func (h *ChatHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.chat.CancelStream()
	respondWithJSON(w, http.StatusOK, h.chat.View())
}

// GetConversations godoc
// @Summary      List conversations
// @Description  Returns the conversation history. Served from the local cache when the chat service is unreachable.
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}   model.ConversationSummary
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/conversations [get]
func (h *ChatHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.chat.ListConversations(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, convs)
}

// HandleSelectConversation godoc
// @Summary      Open a conversation
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      int  true  "Conversation ID"
// @Success      200             {object}  service.View
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/select [post]
func (h *ChatHandler) HandleSelectConversation(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "conversationID")
	if err != nil {
		respondWithError(w, err)
		return
	}
	view, err := h.chat.SelectConversation(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// HandleSelectConversationByUUID godoc
// @Summary      Open a conversation by UUID
// @Tags         Conversations
// @Produce      json
// @Param        uuid  path      string  true  "Conversation UUID"
// @Success      200   {object}  service.View
// @Failure      404   {object}  ErrorResponse
// @Router       /v1/conversations/uuid/{uuid}/select [post]
func (h *ChatHandler) HandleSelectConversationByUUID(w http.ResponseWriter, r *http.Request) {
	view, err := h.chat.SelectConversationByUUID(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// HandleDeleteConversation godoc
// @Summary      Delete a conversation
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      int  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      502             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ChatHandler) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "conversationID")
	if err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.chat.DeleteConversation(r.Context(), id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// HandleUploadKnowledge godoc
// @Summary      Upload a knowledge document
// @Description  Attaches a document to the active conversation, creating the conversation if needed.
// @Tags         Knowledge
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Document"
// @Success      201   {object}  model.KnowledgeItem
// @Failure      400   {object}  ErrorResponse
// @Router       /v1/knowledge [post]
func (h *ChatHandler) HandleUploadKnowledge(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: a file no larger than %d bytes is required", app_errors.ErrValidation, h.maxUploadBytes))
		return
	}
	defer file.Close()

	item, err := h.chat.UploadKnowledge(r.Context(), upload.File{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

// HandleDeleteKnowledge godoc
// @Summary      Delete a knowledge document
// @Tags         Knowledge
// @Produce      json
// @Param        fileID  path      int  true  "File ID"
// @Success      200     {object}  StatusResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/knowledge/{fileID} [delete]
func (h *ChatHandler) HandleDeleteKnowledge(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "fileID")
	if err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.chat.DeleteKnowledge(r.Context(), id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

func int64Param(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", app_errors.ErrValidation, name, raw)
	}
	return id, nil
}
