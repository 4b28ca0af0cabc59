package audio

import (
	"context"
	"sync"
)

// MemorySink holds the clip being played so a remote element (the browser's
// audio tag) can fetch it, and waits for that element to report the end.
type MemorySink struct {
	mu      sync.Mutex
	current *Clip
	done    chan struct{}
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Play(ctx context.Context, clip Clip) error {
	done := make(chan struct{})
	s.mu.Lock()
	s.closeLocked()
	s.current = &clip
	s.done = done
	s.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
	}

	s.mu.Lock()
	if s.done == done {
		s.closeLocked()
	}
	s.mu.Unlock()
	return nil
}

func (s *MemorySink) Stop() {
	s.mu.Lock()
	s.closeLocked()
	s.mu.Unlock()
}

// Current returns the clip being played, if any.
func (s *MemorySink) Current() (Clip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Clip{}, false
	}
	return *s.current, true
}

// Ended reports that playback of messageID finished. Reports for any other
// message are ignored.
func (s *MemorySink) Ended(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.MessageID != messageID {
		return false
	}
	s.closeLocked()
	return true
}

func (s *MemorySink) closeLocked() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	s.current = nil
}
