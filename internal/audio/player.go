// Package audio manages the single shared playback resource: at most one
// message is loading or playing at any time.
package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/transport"
)

// maxClipBytes caps a synthesized clip held in memory.
const maxClipBytes = 32 << 20

// ErrBusy is returned while a play request is still loading.
var ErrBusy = fmt.Errorf("audio: %w: a clip is still loading", app_errors.ErrConflict)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusPlaying Status = "playing"
)

// State is what the play/pause controls render from.
type State struct {
	MessageID string `json:"message_id,omitempty"`
	Status    Status `json:"status"`
}

// Clip is synthesized audio for one message.
type Clip struct {
	MessageID   string
	ContentType string
	Data        []byte
}

// Synthesizer turns text into audio. transport.API satisfies it.
type Synthesizer interface {
	SynthesizeAudio(ctx context.Context, text string) (*transport.Stream, error)
}

// Sink plays clips. Play blocks until the clip ends or ctx is done; Stop
// ends whatever is playing.
type Sink interface {
	Play(ctx context.Context, clip Clip) error
	Stop()
}

// Player serializes access to the sink.
type Player struct {
	synth Synthesizer
	sink  Sink

	mu       sync.Mutex
	state    State
	gen      uint64
	cancel   context.CancelFunc
	onChange func(State)
}

func NewPlayer(synth Synthesizer, sink Sink) *Player {
	return &Player{synth: synth, sink: sink, state: State{Status: StatusIdle}}
}

// OnChange registers fn to be called after every state transition.
func (p *Player) OnChange(fn func(State)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Toggle starts playing text for messageID, or stops it if that message is
// already playing. Asking for a different message stops the current one
// first. While a clip is loading every Toggle fails with ErrBusy.
//
// Toggle returns once the clip is loaded and playback has started.
func (p *Player) Toggle(ctx context.Context, messageID, text string) error {
	p.mu.Lock()
	switch {
	case p.state.Status == StatusLoading:
		p.mu.Unlock()
		return ErrBusy
	case p.state.Status == StatusPlaying && p.state.MessageID == messageID:
		p.stopLocked()
		p.unlockAndNotify()
		return nil
	case p.state.Status == StatusPlaying:
		p.stopLocked()
	}
	p.gen++
	gen := p.gen
	p.state = State{MessageID: messageID, Status: StatusLoading}
	p.unlockAndNotify()

	clip, err := p.load(ctx, messageID, text)

	p.mu.Lock()
	if gen != p.gen {
		// Stopped while loading.
		p.mu.Unlock()
		return nil
	}
	if err != nil {
		p.state = State{Status: StatusIdle}
		p.unlockAndNotify()
		return err
	}
	playCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.state = State{MessageID: messageID, Status: StatusPlaying}
	p.unlockAndNotify()

	go p.play(playCtx, gen, clip)
	return nil
}

// Stop ends playback or abandons a load in progress.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.state.Status == StatusIdle {
		p.mu.Unlock()
		return
	}
	p.stopLocked()
	p.unlockAndNotify()
}

func (p *Player) stopLocked() {
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.sink.Stop()
	p.state = State{Status: StatusIdle}
}

func (p *Player) load(ctx context.Context, messageID, text string) (Clip, error) {
	s, err := p.synth.SynthesizeAudio(ctx, text)
	if err != nil {
		return Clip{}, fmt.Errorf("could not synthesize audio: %w", err)
	}
	defer s.Body.Close()
	data, err := io.ReadAll(io.LimitReader(s.Body, maxClipBytes))
	if err != nil {
		return Clip{}, fmt.Errorf("could not read synthesized audio: %w", err)
	}
	return Clip{MessageID: messageID, ContentType: s.ContentType, Data: data}, nil
}

func (p *Player) play(ctx context.Context, gen uint64, clip Clip) {
	if err := p.sink.Play(ctx, clip); err != nil && ctx.Err() == nil {
		slog.Warn("Audio playback failed", "message_id", clip.MessageID, "error", err)
	}
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = State{Status: StatusIdle}
	p.unlockAndNotify()
}

func (p *Player) unlockAndNotify() {
	state, fn := p.state, p.onChange
	p.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}
