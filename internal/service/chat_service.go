package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"flow-chat/frontend/internal/config"
	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/repository"
	"flow-chat/frontend/internal/stream"
	"flow-chat/frontend/internal/transport"
	"flow-chat/frontend/internal/upload"
)

const (
	// ErrorReplyText stands in for a reply that could not be produced.
	ErrorReplyText = "Sorry, an error occurred while processing your request."
	// StoppedReplyText ends a turn whose reply was stopped before it finished.
	StoppedReplyText = "The response was stopped."
)

// errSuperseded ends work whose session was replaced by a switch or a new chat.
var errSuperseded = fmt.Errorf("%w: the active conversation changed", app_errors.ErrConflict)

// ChatOptions configure a ChatService.
type ChatOptions struct {
	Summarize config.SummarizeMode
	Upload    upload.Policy
	// NewID generates client message ids; time ordered UUIDs when nil.
	NewID func() string
}

// ChatService owns the active conversation. Every operation may run
// concurrently with the others; a session epoch, advanced whenever the
// active conversation is replaced, lets late results be recognized and
// dropped.
type ChatService struct {
	api      transport.API
	consumer *stream.Consumer
	cache    repository.ConversationCache
	opts     ChatOptions
	events   *Broadcaster

	mu        sync.Mutex
	conv      *model.Conversation
	streaming model.StreamingState
	epoch     uint64
	busy      bool
	failed    bool
	switching bool
	// stopping marks a turn asked to stop before its reply started.
	stopping bool
	cancel   *cancelManager
	creating singleflight.Group
	// creationWaiters counts callers inside the shared creation call.
	creationWaiters atomic.Int32

	// notifyMu is taken before mu is released so events leave in
	// transition order.
	notifyMu sync.Mutex
}

func NewChatService(api transport.API, consumer *stream.Consumer, cache repository.ConversationCache, opts ChatOptions) *ChatService {
	if consumer == nil {
		consumer = &stream.Consumer{}
	}
	if opts.NewID == nil {
		opts.NewID = newMessageID
	}
	if opts.Summarize == "" {
		opts.Summarize = config.SummarizeDetached
	}
	return &ChatService{
		api:      api,
		consumer: consumer,
		cache:    cache,
		opts:     opts,
		events:   NewBroadcaster(0),
		cancel:   newCancelManager(),
	}
}

func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Subscribe delivers every session event until the returned function is called.
func (s *ChatService) Subscribe() (<-chan Event, func()) {
	return s.events.Subscribe()
}

// View returns the current snapshot.
func (s *ChatService) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *ChatService) viewLocked() View {
	v := View{Conversation: s.conv.Clone(), Busy: s.busy}
	v.Streaming.IsStreaming = s.streaming.IsStreaming
	if s.streaming.PartialMessage != nil {
		partial := *s.streaming.PartialMessage
		v.Streaming.PartialMessage = &partial
	}
	switch {
	case s.switching:
		v.State = StateSwitching
	case s.streaming.IsStreaming:
		v.State = StateStreaming
	case !s.conv.Confirmed():
		v.State = StateIdle
	case s.failed:
		v.State = StateFailed
	default:
		v.State = StateCreated
	}
	return v
}

// publishLocked releases mu and publishes the resulting view.
func (s *ChatService) publishLocked(kind EventKind) {
	ev := Event{Kind: kind, View: s.viewLocked()}
	s.notifyMu.Lock()
	s.mu.Unlock()
	s.events.Publish(ev)
	s.notifyMu.Unlock()
}

// Submit sends text as the next user turn and drives the reply to a
// terminal state: either a committed assistant message or a visible error
// message. Only one turn runs at a time; a second Submit meanwhile fails
// with ErrConflict.
func (s *ChatService) Submit(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: message is empty", app_errors.ErrValidation)
	}

	turnCtx, cancelTurn := context.WithCancel(ctx)
	defer cancelTurn()

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return fmt.Errorf("%w: a reply is still in progress", app_errors.ErrConflict)
	}
	s.busy = true
	s.failed = false
	s.stopping = false
	s.cancel.set(cancelTurn)
	epoch := s.epoch
	if s.conv == nil {
		s.conv = &model.Conversation{Messages: []model.Message{}, Knowledge: []model.KnowledgeItem{}}
	}
	userMsg := model.Message{ID: s.opts.NewID(), Role: model.RoleUser, Content: text, Status: model.StatusPending}
	s.conv.Messages = append(s.conv.Messages, userMsg)
	s.publishLocked(EventMessage)

	defer s.endTurn(epoch)

	convID, seeded, err := s.ensureConversation(turnCtx, epoch)
	if err == nil && seeded != userMsg.ID {
		var serverID string
		serverID, err = s.api.AddMessage(turnCtx, convID, userMsg)
		if err == nil {
			s.updateMessage(epoch, userMsg.ID, func(m *model.Message) {
				m.Status = model.StatusSent
				m.ServerID = serverID
			})
		}
	}
	if err != nil {
		if errors.Is(err, errSuperseded) || s.settleStopped(epoch, userMsg.ID) {
			return nil
		}
		slog.Error("Failed to send message", "conversation_id", convID, "error", err)
		s.failTurn(epoch, userMsg.ID)
		return err
	}

	return s.streamReply(turnCtx, epoch, convID, userMsg.ID)
}

// settleStopped resolves the turn if it was replaced or asked to stop,
// and reports whether it did.
func (s *ChatService) settleStopped(epoch uint64, userMsgID string) bool {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return true
	}
	if !s.stopping {
		s.mu.Unlock()
		return false
	}
	s.stopLocked(userMsgID)
	s.publishLocked(EventSettled)
	return true
}

// stopLocked ends a turn stopped before its reply started. An unsent user
// message is marked failed.
func (s *ChatService) stopLocked(userMsgID string) {
	if i := s.indexLocked(userMsgID); i >= 0 && s.conv.Messages[i].Status == model.StatusPending {
		s.conv.Messages[i].Status = model.StatusFailed
	}
	s.conv.Messages = append(s.conv.Messages, model.Message{
		ID:      s.opts.NewID(),
		Role:    model.RoleAssistant,
		Content: StoppedReplyText,
		Status:  model.StatusError,
	})
}

func (s *ChatService) endTurn(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch == epoch {
		s.busy = false
		s.stopping = false
		s.cancel.cancel()
	}
}

// failTurn marks the user message failed and resolves the turn with an
// error reply.
func (s *ChatService) failTurn(epoch uint64, userMsgID string) {
	s.mu.Lock()
	if s.epoch != epoch || s.conv == nil {
		s.mu.Unlock()
		return
	}
	if i := s.indexLocked(userMsgID); i >= 0 {
		s.conv.Messages[i].Status = model.StatusFailed
	}
	s.conv.Messages = append(s.conv.Messages, model.Message{
		ID:      s.opts.NewID(),
		Role:    model.RoleAssistant,
		Content: ErrorReplyText,
		Status:  model.StatusError,
	})
	s.failed = true
	s.publishLocked(EventSettled)
}

func (s *ChatService) updateMessage(epoch uint64, id string, fn func(*model.Message)) {
	s.mu.Lock()
	if s.epoch != epoch || s.conv == nil {
		s.mu.Unlock()
		return
	}
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	fn(&s.conv.Messages[i])
	s.publishLocked(EventMessage)
}

func (s *ChatService) indexLocked(id string) int {
	return slices.IndexFunc(s.conv.Messages, func(m model.Message) bool { return m.ID == id })
}

func (s *ChatService) streamReply(ctx context.Context, epoch uint64, convID int64, userMsgID string) error {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return nil
	}
	if s.stopping {
		s.stopLocked(userMsgID)
		s.publishLocked(EventSettled)
		return nil
	}
	replyID := s.opts.NewID()
	s.streaming = model.StreamingState{
		IsStreaming:    true,
		PartialMessage: &model.Message{ID: replyID, Role: model.RoleAssistant, Status: model.StatusPending},
	}
	s.publishLocked(EventPartial)

	var final string
	completion, err := s.api.RequestCompletion(ctx, convID)
	if err == nil {
		final, err = s.consumer.Consume(ctx, completion.Body, stream.FramingFor(completion.ContentType), func(partial string) {
			s.applyPartial(epoch, replyID, partial)
		})
	}

	s.mu.Lock()
	if s.epoch != epoch {
		// Switched away or stopped; whoever advanced the epoch settled the view.
		s.mu.Unlock()
		return nil
	}
	s.streaming = model.StreamingState{}
	reply := model.Message{ID: replyID, Role: model.RoleAssistant}
	switch {
	case err == nil:
		reply.Content = final
		reply.Status = model.StatusSent
	case ctx.Err() != nil:
		reply.Content = StoppedReplyText
		reply.Status = model.StatusError
	default:
		slog.Error("Completion stream failed", "conversation_id", convID, "error", err)
		reply.Content = ErrorReplyText
		reply.Status = model.StatusError
		s.failed = true
	}
	s.conv.Messages = append(s.conv.Messages, reply)
	s.publishLocked(EventSettled)
	return err
}

func (s *ChatService) applyPartial(epoch uint64, replyID, partial string) {
	s.mu.Lock()
	if s.epoch != epoch || s.streaming.PartialMessage == nil || s.streaming.PartialMessage.ID != replyID {
		s.mu.Unlock()
		return
	}
	s.streaming.PartialMessage = &model.Message{
		ID:      replyID,
		Role:    model.RoleAssistant,
		Content: partial,
		Status:  model.StatusPending,
	}
	s.publishLocked(EventPartial)
}

type created struct {
	id int64
	// seed is the local message sent as the initial text, if any.
	seed string
}

// ensureConversation returns the server id of the active conversation,
// creating it first when it only exists locally. Concurrent callers share
// a single creation call. seed reports which local message, if any, was
// sent along as the initial text.
func (s *ChatService) ensureConversation(ctx context.Context, epoch uint64) (int64, string, error) {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return 0, "", errSuperseded
	}
	if s.conv.Confirmed() {
		id := s.conv.ID
		s.mu.Unlock()
		return id, "", nil
	}
	s.mu.Unlock()

	// The creation outlives any one caller's context; other callers may be waiting on it.
	createCtx := context.WithoutCancel(ctx)
	s.creationWaiters.Add(1)
	v, err, _ := s.creating.Do(fmt.Sprintf("create-%d", epoch), func() (any, error) {
		return s.createConversation(createCtx, epoch)
	})
	s.creationWaiters.Add(-1)
	if err != nil {
		return 0, "", err
	}
	c := v.(created)
	return c.id, c.seed, nil
}

func (s *ChatService) createConversation(ctx context.Context, epoch uint64) (created, error) {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return created{}, errSuperseded
	}
	if s.conv.Confirmed() {
		id := s.conv.ID
		s.mu.Unlock()
		return created{id: id}, nil
	}
	var initial *string
	var seed string
	if s.conv != nil {
		for _, m := range s.conv.Messages {
			if m.Role == model.RoleUser && m.Status == model.StatusPending {
				text := m.Content
				initial, seed = &text, m.ID
				break
			}
		}
	}
	s.mu.Unlock()

	conv, err := s.api.CreateConversation(ctx, initial)
	if err != nil {
		return created{}, fmt.Errorf("could not create conversation: %w", err)
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return created{}, errSuperseded
	}
	s.adoptLocked(conv, seed)
	s.publishLocked(EventConversation)

	s.cacheUpsert(ctx, conv.Summary())
	s.summarize(ctx, conv.ID)
	return created{id: conv.ID, seed: seed}, nil
}

// adoptLocked promotes the local conversation to the server's record,
// keeping every optimistic message.
func (s *ChatService) adoptLocked(server *model.Conversation, seed string) {
	var local []model.Message
	var localKnowledge []model.KnowledgeItem
	if s.conv != nil {
		local, localKnowledge = s.conv.Messages, s.conv.Knowledge
	}
	merged := reconcile(local, withIDs(server.Messages, s.opts.NewID))
	if seed != "" {
		if i := slices.IndexFunc(merged, func(m model.Message) bool { return m.ID == seed }); i >= 0 {
			merged[i].Status = model.StatusSent
		}
	}
	s.conv = &model.Conversation{
		ID:        server.ID,
		UUID:      server.UUID,
		Title:     server.Title,
		UserID:    server.UserID,
		Messages:  merged,
		Knowledge: mergeKnowledge(localKnowledge, server.Knowledge),
	}
}

// summarize triggers title generation according to the configured policy.
// Its outcome is only ever logged.
func (s *ChatService) summarize(ctx context.Context, convID int64) {
	run := func(ctx context.Context) {
		if err := s.api.SummarizeConversation(ctx, convID); err != nil {
			slog.Warn("Failed to summarize conversation", "conversation_id", convID, "error", err)
		}
	}
	switch s.opts.Summarize {
	case config.SummarizeAwait:
		run(ctx)
	case config.SummarizeDetached:
		go run(context.Background())
	}
}

// CancelStream stops the turn in flight, if any. A streaming reply ends at
// once with a stopped message. A turn still creating the conversation or
// sending the user message ends the same way as soon as that call returns;
// the reply is never requested. Calling it again, or with no turn, does
// nothing.
func (s *ChatService) CancelStream() {
	s.mu.Lock()
	if s.busy && !s.streaming.IsStreaming {
		s.stopping = true
		s.cancel.cancel()
		s.mu.Unlock()
		return
	}
	if !s.streaming.IsStreaming {
		s.mu.Unlock()
		return
	}
	s.epoch++
	s.cancel.cancel()
	s.busy = false
	s.stopping = false
	replyID := s.streaming.PartialMessage.ID
	s.streaming = model.StreamingState{}
	s.conv.Messages = append(s.conv.Messages, model.Message{
		ID:      replyID,
		Role:    model.RoleAssistant,
		Content: StoppedReplyText,
		Status:  model.StatusError,
	})
	s.publishLocked(EventSettled)
}

// NewChat leaves the active conversation; the next Submit creates a new one.
func (s *ChatService) NewChat() {
	s.mu.Lock()
	s.resetLocked()
	s.conv = nil
	s.publishLocked(EventConversation)
}

// Close stops any work in flight. Used on teardown.
func (s *ChatService) Close() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

func (s *ChatService) resetLocked() {
	s.epoch++
	s.cancel.cancel()
	s.streaming = model.StreamingState{}
	s.busy = false
	s.failed = false
	s.switching = false
	s.stopping = false
}

// SelectConversation makes the conversation with id active. Any reply in
// flight is cancelled before the new conversation is loaded.
func (s *ChatService) SelectConversation(ctx context.Context, id int64) (View, error) {
	return s.switchTo(ctx, func(ctx context.Context) (*model.Conversation, error) {
		return s.api.FetchConversation(ctx, id)
	})
}

// SelectConversationByUUID is SelectConversation by public identifier.
func (s *ChatService) SelectConversationByUUID(ctx context.Context, uuid string) (View, error) {
	return s.switchTo(ctx, func(ctx context.Context) (*model.Conversation, error) {
		return s.api.FetchConversationByUUID(ctx, uuid)
	})
}

func (s *ChatService) switchTo(ctx context.Context, fetch func(context.Context) (*model.Conversation, error)) (View, error) {
	s.mu.Lock()
	s.resetLocked()
	s.switching = true
	epoch := s.epoch
	s.publishLocked(EventSwitching)

	conv, err := fetch(ctx)

	s.mu.Lock()
	if s.epoch != epoch {
		v := s.viewLocked()
		s.mu.Unlock()
		return v, errSuperseded
	}
	s.switching = false
	if err != nil {
		s.publishLocked(EventConversation)
		return s.View(), fmt.Errorf("could not load conversation: %w", err)
	}
	conv.Messages = withIDs(conv.Messages, s.opts.NewID)
	s.conv = conv.Clone()
	v := s.viewLocked()
	s.publishLocked(EventConversation)

	s.cacheUpsert(ctx, conv.Summary())
	return v, nil
}

// DeleteConversation deletes a conversation on the server. Deleting the
// active conversation starts a new chat.
func (s *ChatService) DeleteConversation(ctx context.Context, id int64) error {
	if err := s.api.DeleteConversation(ctx, id); err != nil {
		return fmt.Errorf("could not delete conversation %d: %w", id, err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			slog.Warn("Failed to remove conversation from cache", "conversation_id", id, "error", err)
		}
	}

	s.mu.Lock()
	if s.conv == nil || s.conv.ID != id {
		s.mu.Unlock()
		return nil
	}
	s.resetLocked()
	s.conv = nil
	s.publishLocked(EventConversation)
	return nil
}

// ListConversations returns the history list and refreshes the local
// cache. When the API is unreachable the cached list is returned instead;
// cached entries carry a non-zero CachedAt.
func (s *ChatService) ListConversations(ctx context.Context) ([]model.ConversationSummary, error) {
	convs, err := s.api.FetchConversations(ctx)
	if err != nil {
		var netErr *app_errors.NetworkError
		if s.cache != nil && errors.As(err, &netErr) {
			cached, cacheErr := s.cache.List(ctx)
			if cacheErr == nil {
				slog.Warn("Serving cached conversation list", "error", err, "entries", len(cached))
				return cached, nil
			}
			slog.Warn("Conversation cache unavailable", "error", cacheErr)
		}
		return nil, fmt.Errorf("could not list conversations: %w", err)
	}

	summaries := make([]model.ConversationSummary, 0, len(convs))
	for i := range convs {
		summaries = append(summaries, convs[i].Summary())
	}
	if s.cache != nil {
		if err := s.cache.ReplaceAll(ctx, summaries); err != nil {
			slog.Warn("Failed to refresh conversation cache", "error", err)
		}
	}
	return summaries, nil
}

// UploadKnowledge checks f locally, then attaches it to the active
// conversation, creating the conversation first if needed. The result is
// applied only if that conversation is still active.
func (s *ChatService) UploadKnowledge(ctx context.Context, f upload.File) (*model.KnowledgeItem, error) {
	f, err := s.opts.Upload.Check(f)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	epoch := s.epoch
	if s.conv == nil {
		s.conv = &model.Conversation{Messages: []model.Message{}, Knowledge: []model.KnowledgeItem{}}
	}
	s.mu.Unlock()

	convID, _, err := s.ensureConversation(ctx, epoch)
	if err != nil {
		return nil, err
	}
	item, err := s.api.UploadKnowledge(ctx, convID, f)
	if err != nil {
		return nil, fmt.Errorf("could not upload %q: %w", f.Name, err)
	}

	s.mu.Lock()
	if s.conv == nil || s.conv.ID != convID {
		s.mu.Unlock()
		return item, nil
	}
	s.conv.Knowledge = append(s.conv.Knowledge, *item)
	s.publishLocked(EventKnowledge)
	return item, nil
}

// DeleteKnowledge removes a document from the active conversation.
func (s *ChatService) DeleteKnowledge(ctx context.Context, fileID int64) error {
	s.mu.Lock()
	if !s.conv.Confirmed() {
		s.mu.Unlock()
		return fmt.Errorf("%w: no active conversation", app_errors.ErrNotFound)
	}
	convID := s.conv.ID
	s.mu.Unlock()

	if err := s.api.DeleteKnowledge(ctx, convID, fileID); err != nil {
		return fmt.Errorf("could not delete knowledge %d: %w", fileID, err)
	}

	s.mu.Lock()
	if s.conv == nil || s.conv.ID != convID {
		s.mu.Unlock()
		return nil
	}
	s.conv.Knowledge = slices.DeleteFunc(s.conv.Knowledge, func(k model.KnowledgeItem) bool { return k.ID == fileID })
	s.publishLocked(EventKnowledge)
	return nil
}

// EditMessage changes a server-confirmed message, then reloads the
// conversation from the server.
func (s *ChatService) EditMessage(ctx context.Context, messageID, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: message is empty", app_errors.ErrValidation)
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return fmt.Errorf("%w: a reply is still in progress", app_errors.ErrConflict)
	}
	if !s.conv.Confirmed() {
		s.mu.Unlock()
		return fmt.Errorf("%w: no active conversation", app_errors.ErrNotFound)
	}
	i := s.indexLocked(messageID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
	}
	serverID := s.conv.Messages[i].ServerID
	convID, epoch := s.conv.ID, s.epoch
	s.mu.Unlock()

	if serverID == "" {
		return fmt.Errorf("%w: message %s is not confirmed by the server", app_errors.ErrValidation, messageID)
	}
	if err := s.api.EditMessage(ctx, convID, serverID, content); err != nil {
		return fmt.Errorf("could not edit message: %w", err)
	}

	conv, err := s.api.FetchConversation(ctx, convID)
	if err != nil {
		return fmt.Errorf("could not reload conversation: %w", err)
	}
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return nil
	}
	conv.Messages = withIDs(conv.Messages, s.opts.NewID)
	s.conv = conv.Clone()
	s.publishLocked(EventConversation)
	return nil
}

func (s *ChatService) cacheUpsert(ctx context.Context, summary model.ConversationSummary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Upsert(ctx, summary); err != nil {
		slog.Warn("Failed to cache conversation", "conversation_id", summary.ID, "error", err)
	}
}

// withIDs gives server messages lacking an id a client id so every
// message has a render key.
func withIDs(msgs []model.Message, newID func() string) []model.Message {
	out := slices.Clone(msgs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = newID()
		}
	}
	if out == nil {
		out = []model.Message{}
	}
	return out
}
