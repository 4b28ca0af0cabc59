// Package stream turns a progressively delivered completion body into a
// sequence of growing text snapshots.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	app_errors "flow-chat/frontend/internal/errors"
)

// Framing is how the completion body is delimited.
type Framing int

const (
	// FramingRaw treats the body as plain text; every read is one chunk.
	FramingRaw Framing = iota
	// FramingEventStream treats the body as Server-Sent Events; every
	// event's data is one chunk.
	FramingEventStream
)

// doneSentinel ends an event stream without being part of the text.
const doneSentinel = "[DONE]"

// FramingFor picks the framing from a response Content-Type.
func FramingFor(contentType string) Framing {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "text/event-stream" {
		return FramingEventStream
	}
	return FramingRaw
}

// Consumer reads completion bodies. The zero value is ready to use.
type Consumer struct {
	// BufferSize is the read size for raw framing; 4096 when zero.
	BufferSize int
}

// Consume reads body until it is exhausted, calling emit with the whole
// accumulated text after every chunk. It returns the final text.
//
// Multi-byte characters split across reads are carried over to the next
// read rather than decoded in isolation. When ctx is cancelled the body is
// closed immediately, nothing more is emitted, and ctx.Err() is returned.
// A failed read returns a *StreamError holding the partial text.
func (c *Consumer) Consume(ctx context.Context, body io.ReadCloser, framing Framing, emit func(partial string)) (string, error) {
	defer body.Close()
	stop := context.AfterFunc(ctx, func() { _ = body.Close() })
	defer stop()

	decoded := transform.NewReader(body, unicode.UTF8.NewDecoder())
	acc := &accumulator{ctx: ctx, emit: emit}

	var err error
	switch framing {
	case FramingEventStream:
		err = c.readEvents(decoded, acc)
	default:
		err = c.readRaw(decoded, acc)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", &app_errors.StreamError{Partial: acc.text.String(), Err: err}
	}
	return acc.text.String(), nil
}

type accumulator struct {
	ctx  context.Context
	text strings.Builder
	emit func(string)
}

// add appends a chunk and emits the new snapshot. Chunks arriving after
// cancellation are dropped.
func (a *accumulator) add(chunk string) bool {
	if a.ctx.Err() != nil {
		return false
	}
	if chunk == "" {
		return true
	}
	a.text.WriteString(chunk)
	if a.emit != nil {
		a.emit(a.text.String())
	}
	return true
}

func (c *Consumer) readRaw(r io.Reader, acc *accumulator) error {
	size := c.BufferSize
	if size <= 0 {
		size = 4096
	}
	buf := make([]byte, size)
	for {
		n, err := r.Read(buf)
		if n > 0 && !acc.add(string(buf[:n])) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Consumer) readEvents(r io.Reader, acc *accumulator) error {
	events := NewSSEReader(r)
	for {
		event, data, err := events.ReadEvent()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if event == "error" {
			return fmt.Errorf("server reported: %s", eventText(data))
		}
		if data == doneSentinel {
			return nil
		}
		if !acc.add(eventText(data)) {
			return nil
		}
	}
}

// eventText unwraps `{"content": "..."}` payloads; anything else is the text itself.
func eventText(data string) string {
	if !strings.HasPrefix(data, "{") {
		return data
	}
	var payload struct {
		Content *string `json:"content"`
		Error   string  `json:"error"`
	}
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return data
	}
	if payload.Content != nil {
		return *payload.Content
	}
	if payload.Error != "" {
		return payload.Error
	}
	return data
}

// SSEReader parses Server-Sent Events from decoded text.
type SSEReader struct {
	reader *bufio.Reader
}

func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{reader: bufio.NewReader(r)}
}

// ReadEvent returns the next event type and its data lines joined by "\n".
// It returns io.EOF once the stream ends with no pending event.
func (s *SSEReader) ReadEvent() (string, string, error) {
	var eventType string
	var dataLines []string

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", err
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if len(dataLines) > 0 {
				return eventType, strings.Join(dataLines, "\n"), nil
			}
		case strings.HasPrefix(line, ":"):
			// comment / keep-alive
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			data := line[len("data:"):]
			data = strings.TrimPrefix(data, " ")
			dataLines = append(dataLines, data)
		}

		if eof {
			if len(dataLines) > 0 {
				return eventType, strings.Join(dataLines, "\n"), nil
			}
			return "", "", io.EOF
		}
	}
}
