package service

import (
	"log/slog"
	"sync"

	"flow-chat/frontend/internal/model"
)

// State is the conversation state machine's current state.
type State string

const (
	StateIdle      State = "idle"
	StateCreated   State = "created"
	StateStreaming State = "streaming"
	StateFailed    State = "failed"
	StateSwitching State = "switching"
)

// View is a consistent snapshot of the session, safe to render.
type View struct {
	State        State                `json:"state"`
	Conversation *model.Conversation  `json:"conversation"`
	Streaming    model.StreamingState `json:"streaming"`
	// Busy is true while a turn is in flight; Submit is rejected then.
	Busy bool `json:"busy"`
}

type EventKind string

const (
	EventConversation EventKind = "conversation"
	EventSwitching    EventKind = "switching"
	EventMessage      EventKind = "message"
	EventPartial      EventKind = "partial"
	EventKnowledge    EventKind = "knowledge"
	EventSettled      EventKind = "settled"
)

// Event is published after every transition, in transition order.
type Event struct {
	Kind EventKind `json:"kind"`
	View View      `json:"view"`
}

// Broadcaster fans events out to subscribers without ever blocking the
// publisher. A subscriber that falls behind loses events.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[uint64]chan Event
	next   uint64
	buffer int
}

func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = 256
	}
	return &Broadcaster{subs: make(map[uint64]chan Event), buffer: buffer}
}

// Subscribe returns a channel of events and a function that ends the
// subscription and closes the channel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("Dropping session event for slow subscriber", "subscriber", id, "kind", ev.Kind)
		}
	}
}
