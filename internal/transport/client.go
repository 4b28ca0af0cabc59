package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"flow-chat/frontend/internal/credentials"
	app_errors "flow-chat/frontend/internal/errors"
	"flow-chat/frontend/internal/model"
	"flow-chat/frontend/internal/upload"
)

// Options configure a Client.
type Options struct {
	BaseURL string
	// AuthURL serves login and signup; BaseURL when empty.
	AuthURL string
	// Timeout bounds every request except the completion stream.
	Timeout time.Duration
	// SendEmptyTitle sends `"title": ""` on creation instead of omitting it.
	SendEmptyTitle bool
	Voice          string
}

// Client implements API over HTTP.
type Client struct {
	api       *resty.Client
	auth      *resty.Client
	streaming *resty.Client
	tokens    credentials.TokenProvider
	opts      Options
}

var _ API = (*Client)(nil)

func NewClient(opts Options, tokens credentials.TokenProvider) *Client {
	if opts.AuthURL == "" {
		opts.AuthURL = opts.BaseURL
	}
	if opts.Voice == "" {
		opts.Voice = "alloy"
	}
	logger := restyLogger{}

	api := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetLogger(logger)
	auth := resty.New().
		SetBaseURL(opts.AuthURL).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetLogger(logger)
	// Completion bodies may take minutes; only the context ends them.
	streaming := resty.New().
		SetBaseURL(opts.BaseURL).
		SetLogger(logger)

	return &Client{api: api, auth: auth, streaming: streaming, tokens: tokens, opts: opts}
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	const op = "login"
	body := map[string]string{"email": email, "password": password}
	return c.tokenCall(ctx, op, "/login", body)
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) (string, error) {
	const op = "register"
	return c.tokenCall(ctx, op, "/signup", req)
}

func (c *Client) tokenCall(ctx context.Context, op, path string, body any) (string, error) {
	req := c.auth.R().SetContext(ctx).SetBody(body)
	resp, err := c.do(req, http.MethodPost, path, op)
	if err != nil {
		return "", err
	}
	var payload tokenPayload
	if err := decode(resp.Body(), &payload, op); err != nil {
		return "", err
	}
	if payload.Token == "" {
		return "", fmt.Errorf("%s: %w: token missing", op, app_errors.ErrMalformedResponse)
	}
	return payload.Token, nil
}

func (c *Client) CreateConversation(ctx context.Context, initialText *string) (*model.Conversation, error) {
	const op = "createConversation"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return nil, err
	}

	body := createConversationBody{Messages: []messageBody{}}
	if c.opts.SendEmptyTitle {
		empty := ""
		body.Title = &empty
	}
	if initialText != nil {
		body.Messages = append(body.Messages, messageBody{Role: model.RoleUser, Content: *initialText})
	}

	resp, err := c.do(req.SetBody(body), http.MethodPost, "/conversation", op)
	if err != nil {
		return nil, err
	}
	return decodeConversation(resp.Body(), op)
}

func (c *Client) AddMessage(ctx context.Context, conversationID int64, message model.Message) (string, error) {
	const op = "addMessage"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return "", err
	}
	req.SetBody(messageBody{Role: message.Role, Content: message.Content})

	resp, err := c.do(req, http.MethodPost, fmt.Sprintf("/conversation/%d/message", conversationID), op)
	if err != nil {
		return "", err
	}
	// Older servers answer with an empty body.
	if len(bytes.TrimSpace(resp.Body())) == 0 {
		return "", nil
	}
	var payload idPayload
	if err := decode(resp.Body(), &payload, op); err != nil {
		return "", err
	}
	return string(payload.ID), nil
}

func (c *Client) EditMessage(ctx context.Context, conversationID int64, messageID, content string) error {
	const op = "editMessage"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return err
	}
	req.SetBody(map[string]string{"content": content})
	_, err = c.do(req, http.MethodPatch, fmt.Sprintf("/conversation/%d/message/%s", conversationID, messageID), op)
	return err
}

func (c *Client) FetchConversation(ctx context.Context, conversationID int64) (*model.Conversation, error) {
	const op = "fetchConversation"
	return c.fetchConversation(ctx, op, fmt.Sprintf("/conversation/%d", conversationID))
}

func (c *Client) FetchConversationByUUID(ctx context.Context, uuid string) (*model.Conversation, error) {
	const op = "fetchConversationByUUID"
	return c.fetchConversation(ctx, op, "/conversation/uuid/"+uuid)
}

func (c *Client) fetchConversation(ctx context.Context, op, path string) (*model.Conversation, error) {
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, http.MethodGet, path, op)
	if err != nil {
		return nil, err
	}
	return decodeConversation(resp.Body(), op)
}

func (c *Client) FetchConversations(ctx context.Context) ([]model.Conversation, error) {
	const op = "fetchConversations"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return nil, err
	}
	req.SetQueryParams(map[string]string{"skip": "0", "limit": "100"})

	resp, err := c.do(req, http.MethodGet, "/conversation", op)
	if err != nil {
		return nil, err
	}
	var payloads []conversationPayload
	if err := decode(resp.Body(), &payloads, op); err != nil {
		return nil, err
	}
	convs := make([]model.Conversation, 0, len(payloads))
	for i := range payloads {
		conv, err := payloads[i].toModel(op)
		if err != nil {
			return nil, err
		}
		convs = append(convs, *conv)
	}
	return convs, nil
}

func (c *Client) DeleteConversation(ctx context.Context, conversationID int64) error {
	const op = "deleteConversation"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return err
	}
	resp, err := c.do(req, http.MethodDelete, fmt.Sprintf("/conversation/%d", conversationID), op)
	if err != nil {
		return err
	}
	// Anything but 200 (including 204) means the delete was not confirmed.
	if resp.StatusCode() != http.StatusOK {
		return &app_errors.HTTPError{Op: op, Status: resp.StatusCode(), Detail: detailOf(resp.Body())}
	}
	return nil
}

func (c *Client) RequestCompletion(ctx context.Context, conversationID int64) (*Stream, error) {
	const op = "requestCompletion"
	req, err := c.authorized(ctx, c.streaming, op)
	if err != nil {
		return nil, err
	}
	req.SetHeader("Accept", "text/event-stream, text/plain")
	return c.openStream(req, http.MethodPost, fmt.Sprintf("/conversation/%d/completion", conversationID), op)
}

func (c *Client) SummarizeConversation(ctx context.Context, conversationID int64) error {
	const op = "summarizeConversation"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return err
	}
	_, err = c.do(req, http.MethodPost, fmt.Sprintf("/conversation/%d/summarize", conversationID), op)
	return err
}

func (c *Client) UploadKnowledge(ctx context.Context, conversationID int64, file upload.File) (*model.KnowledgeItem, error) {
	const op = "uploadKnowledge"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return nil, err
	}
	req.SetMultipartField("file", file.Name, file.ContentType, file.Content)

	resp, err := c.do(req, http.MethodPost, fmt.Sprintf("/conversation/%d/knowledge", conversationID), op)
	if err != nil {
		return nil, err
	}
	var payload knowledgePayload
	if err := decode(resp.Body(), &payload, op); err != nil {
		return nil, err
	}
	return payload.toModel(op, file.Name)
}

func (c *Client) DeleteKnowledge(ctx context.Context, conversationID, fileID int64) error {
	const op = "deleteKnowledge"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return err
	}
	_, err = c.do(req, http.MethodDelete, fmt.Sprintf("/conversation/%d/knowledge/%d", conversationID, fileID), op)
	return err
}

func (c *Client) TranscribeAudio(ctx context.Context, audio io.Reader, mimeType string) (string, error) {
	const op = "transcribeAudio"
	req, err := c.authorized(ctx, c.api, op)
	if err != nil {
		return "", err
	}
	req.SetMultipartField("audio_file", upload.AudioFileName(mimeType), mimeType, audio)

	resp, err := c.do(req, http.MethodPost, "/audio/transcribe", op)
	if err != nil {
		return "", err
	}
	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '{' {
		var payload struct {
			Text string `json:"text"`
		}
		if err := decode(body, &payload, op); err != nil {
			return "", err
		}
		return strings.TrimSpace(payload.Text), nil
	}
	return string(body), nil
}

func (c *Client) SynthesizeAudio(ctx context.Context, text string) (*Stream, error) {
	const op = "synthesizeAudio"
	req, err := c.authorized(ctx, c.streaming, op)
	if err != nil {
		return nil, err
	}
	req.SetHeader("Accept", "audio/*").
		SetBody(map[string]string{"input": text, "voice": c.opts.Voice})
	return c.openStream(req, http.MethodPost, "/audio/synthesize", op)
}

// authorized starts a request carrying the bearer token, or fails with
// ErrAuth without touching the network.
func (c *Client) authorized(ctx context.Context, rc *resty.Client, op string) (*resty.Request, error) {
	token, ok := c.tokens.Token(ctx)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, app_errors.ErrAuth)
	}
	return rc.R().SetContext(ctx).SetAuthToken(token), nil
}

func (c *Client) do(req *resty.Request, method, path, op string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		slog.Debug("Remote call failed", "op", op, "error", err)
		return nil, &app_errors.NetworkError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &app_errors.HTTPError{Op: op, Status: resp.StatusCode(), Detail: detailOf(resp.Body())}
	}
	return resp, nil
}

// openStream executes req without buffering the body.
func (c *Client) openStream(req *resty.Request, method, path, op string) (*Stream, error) {
	resp, err := req.SetDoNotParseResponse(true).Execute(method, path)
	if err != nil {
		slog.Debug("Remote call failed", "op", op, "error", err)
		return nil, &app_errors.NetworkError{Op: op, Err: err}
	}
	body := resp.RawBody()
	if !resp.IsSuccess() {
		var detail []byte
		if body != nil {
			detail, _ = io.ReadAll(io.LimitReader(body, 64<<10))
			_ = body.Close()
		}
		return nil, &app_errors.HTTPError{Op: op, Status: resp.StatusCode(), Detail: detailOf(detail)}
	}
	if body == nil {
		return nil, fmt.Errorf("%s: %w: response has no body", op, app_errors.ErrMalformedResponse)
	}
	return &Stream{Body: body, ContentType: resp.Header().Get("Content-Type")}, nil
}

func decode(body []byte, v any, op string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: %w: %v", op, app_errors.ErrMalformedResponse, err)
	}
	return nil
}

func decodeConversation(body []byte, op string) (*model.Conversation, error) {
	var payload conversationPayload
	if err := decode(body, &payload, op); err != nil {
		return nil, err
	}
	return payload.toModel(op)
}

// restyLogger routes resty's internal messages into slog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "transport")
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "transport")
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "transport")
}
