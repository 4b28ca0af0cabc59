package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"slices"
	"strings"

	"flow-chat/frontend/internal/audio"
	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/transport"
)

// MessageSource is where the audio service looks up the text to speak.
// ChatService satisfies it.
type MessageSource interface {
	View() View
}

// AudioService covers speech input and spoken replies.
type AudioService struct {
	api      transport.API
	player   *audio.Player
	sink     *audio.MemorySink
	messages MessageSource
}

func NewAudioService(api transport.API, player *audio.Player, sink *audio.MemorySink, messages MessageSource) *AudioService {
	return &AudioService{api: api, player: player, sink: sink, messages: messages}
}

// Transcribe turns a recording into text.
func (s *AudioService) Transcribe(ctx context.Context, recording io.Reader, mimeType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil || !strings.HasPrefix(mediaType, "audio/") {
		return "", fmt.Errorf("%w: %q is not an audio type", app_errors.ErrValidation, mimeType)
	}
	text, err := s.api.TranscribeAudio(ctx, recording, mimeType)
	if err != nil {
		return "", fmt.Errorf("could not transcribe recording: %w", err)
	}
	return text, nil
}

// Toggle plays or stops the message with messageID from the active conversation.
func (s *AudioService) Toggle(ctx context.Context, messageID string) (audio.State, error) {
	conv := s.messages.View().Conversation
	if conv == nil {
		return s.player.State(), fmt.Errorf("%w: no active conversation", app_errors.ErrNotFound)
	}
	i := slices.IndexFunc(conv.Messages, func(m model.Message) bool { return m.ID == messageID })
	if i < 0 {
		return s.player.State(), fmt.Errorf("%w: message %s", app_errors.ErrNotFound, messageID)
	}
	if strings.TrimSpace(conv.Messages[i].Content) == "" {
		return s.player.State(), fmt.Errorf("%w: message %s has no text", app_errors.ErrValidation, messageID)
	}
	if err := s.player.Toggle(ctx, messageID, conv.Messages[i].Content); err != nil {
		return s.player.State(), err
	}
	return s.player.State(), nil
}

func (s *AudioService) State() audio.State { return s.player.State() }

// Current returns the clip being played.
func (s *AudioService) Current() (audio.Clip, bool) { return s.sink.Current() }

// Ended is reported by the playing element once the clip has finished.
func (s *AudioService) Ended(messageID string) audio.State {
	s.sink.Ended(messageID)
	return s.player.State()
}

// Stop ends playback. Used on teardown.
func (s *AudioService) Stop() { s.player.Stop() }
