package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quizdesk/quizdesk/internal/apperrors"
	"github.com/quizdesk/quizdesk/internal/logger"
	"github.com/quizdesk/quizdesk/internal/session"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	// Backend origin, e.g. "http://127.0.0.1:8080"
	// Required to be set
	BaseURL string

	// HTTP client for unauthenticated calls. Default timeout applied if not set
	HTTPClient *http.Client

	// Logger. If not set all messages are discarded
	Logger logger.Logger
}

// Client talks to the quiz backend. Unauthenticated endpoints go through
// the plain http client, authenticated ones through the session manager
// which handles the bearer header and the refresh-and-retry dance.
type Client struct {
	BaseURL string

	client  *http.Client
	session *session.Manager
	logger  logger.Logger
}

func NewClient(cfg Config, sess *session.Manager) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url must not be empty")
	}
	if sess == nil {
		return nil, errors.New("session manager must not be nil")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Client{
		BaseURL: cfg.BaseURL,
		client:  client,
		session: sess,
		logger:  log,
	}, nil
}

// Session exposes the session manager so callers can inspect auth state
func (c *Client) Session() *session.Manager {
	return c.session
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends an unauthenticated request
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doAuth sends the request through the session manager
func (c *Client) doAuth(req *http.Request) (*http.Response, error) {
	return c.session.Do(req)
}

// decodeInto drains the response and decodes a 2xx body into target.
// Pass nil target when the body does not matter.
func (c *Client) decodeInto(resp *http.Response, target any) error {
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		c.logger.Warn("Failed to decode response", "error", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errorFromResponse turns a non-2xx response into a RequestError,
// surfacing the backend message when the body carries one.
// The backend is inconsistent about the field name, so try them all.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var body struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	detail := body.Detail
	if detail == "" {
		detail = body.Error
	}
	if detail == "" {
		detail = body.Message
	}

	c.logger.Warn("Request rejected by backend", "status_code", resp.StatusCode, "detail", detail)
	return apperrors.NewRequestError(resp.StatusCode, detail)
}
