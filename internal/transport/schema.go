package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/model"
)

// The payload types below are the strict response schema. Pointers mark
// fields whose absence must be told apart from a zero value.

type conversationPayload struct {
	ID        *int64              `json:"id"`
	UUID      *string             `json:"uuid"`
	Title     *string             `json:"title"`
	UserID    *int64              `json:"user_id"`
	Messages  *[]messagePayload   `json:"messages"`
	Knowledge *[]knowledgePayload `json:"knowledge"`
}

type messagePayload struct {
	ID      flexID `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

type knowledgePayload struct {
	ID            *int64 `json:"id"`
	FileName      string `json:"fileName"`
	FileNameSnake string `json:"file_name"`
}

type createConversationBody struct {
	Title    *string       `json:"title,omitempty"`
	Messages []messageBody `json:"messages"`
}

type messageBody struct {
	Role    model.Role `json:"role"`
	Content string     `json:"content"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

type idPayload struct {
	ID flexID `json:"id"`
}

type errorPayload struct {
	Detail json.RawMessage `json:"detail"`
}

// flexID accepts ids sent either as JSON numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither a string nor a number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// toModel validates required fields and applies the defaulting rules:
// id and uuid are required, messages and knowledge default to empty.
func (p *conversationPayload) toModel(op string) (*model.Conversation, error) {
	if p.ID == nil {
		return nil, fmt.Errorf("%s: %w: conversation id missing", op, app_errors.ErrMalformedResponse)
	}
	if p.UUID == nil || strings.TrimSpace(*p.UUID) == "" {
		return nil, fmt.Errorf("%s: %w: conversation uuid missing", op, app_errors.ErrMalformedResponse)
	}

	conv := &model.Conversation{
		ID:        *p.ID,
		UUID:      *p.UUID,
		UserID:    p.UserID,
		Messages:  []model.Message{},
		Knowledge: []model.KnowledgeItem{},
	}
	if p.Title != nil {
		conv.Title = *p.Title
	}
	if p.Messages != nil {
		for _, m := range *p.Messages {
			conv.Messages = append(conv.Messages, model.Message{
				ID:       string(m.ID),
				ServerID: string(m.ID),
				Role:     model.Role(m.Role),
				Content:  m.Content,
				Status:   model.StatusSent,
			})
		}
	}
	if p.Knowledge != nil {
		for _, k := range *p.Knowledge {
			item, err := k.toModel(op, "")
			if err != nil {
				return nil, err
			}
			conv.Knowledge = append(conv.Knowledge, *item)
		}
	}
	return conv, nil
}

func (k *knowledgePayload) toModel(op, fallbackName string) (*model.KnowledgeItem, error) {
	if k.ID == nil {
		return nil, fmt.Errorf("%s: %w: knowledge id missing", op, app_errors.ErrMalformedResponse)
	}
	name := k.FileName
	if name == "" {
		name = k.FileNameSnake
	}
	if name == "" {
		name = fallbackName
	}
	return &model.KnowledgeItem{ID: *k.ID, FileName: name}, nil
}

// detailOf extracts a readable `detail` from an error body.
func detailOf(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	return string(payload.Detail)
}
