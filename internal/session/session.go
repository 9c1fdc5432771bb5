package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/quizdesk/quizdesk/internal/apperrors"
	"github.com/quizdesk/quizdesk/internal/logger"
	"github.com/quizdesk/quizdesk/internal/models"
)

const defaultTimeout = 10 * time.Second

// Storage for the token pair. File backed in the CLI, in-memory in tests.
type TokenStore interface {
	Tokens() (models.TokenPair, error)
	SetTokens(pair models.TokenPair) error
	Clear() error
}

type Config struct {
	// Backend origin, e.g. "http://127.0.0.1:8080"
	// Required to be set
	BaseURL string

	// HTTP client to use. If not set a client with default timeout is used
	HTTPClient *http.Client

	// Logger. If not set all messages are discarded
	Logger logger.Logger
}

// Manager owns the access/refresh token pair and provides the
// authenticated request primitive with one-shot refresh and retry.
type Manager struct {
	baseURL string
	store   TokenStore
	client  *http.Client
	logger  logger.Logger

	// Coalesces concurrent refreshes into a single in-flight call
	refreshing singleflight.Group
}

func NewManager(cfg Config, store TokenStore) (*Manager, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url must not be empty")
	}
	if store == nil {
		return nil, errors.New("token store must not be nil")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Manager{
		baseURL: cfg.BaseURL,
		store:   store,
		client:  client,
		logger:  log,
	}, nil
}

func (m *Manager) Tokens() (models.TokenPair, error) {
	return m.store.Tokens()
}

func (m *Manager) SetTokens(pair models.TokenPair) error {
	return m.store.SetTokens(pair)
}

// Clear drops both tokens: used on logout and on irrecoverable refresh failure
func (m *Manager) Clear() error {
	return m.store.Clear()
}

// IsAuthenticated reports whether both tokens are present
func (m *Manager) IsAuthenticated() bool {
	pair, err := m.store.Tokens()
	return err == nil && pair.IsComplete()
}

// Refresh exchanges the stored refresh token for a new pair and returns the
// new access token. On any refresh failure both tokens are cleared: the
// session is dead and the caller has to log in again.
//
// Concurrent callers share a single in-flight refresh, so a burst of 401s
// ends up as one request to the backend.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	pair, err := m.store.Tokens()
	if err != nil {
		return "", err
	}
	if pair.RefreshToken == "" {
		return "", apperrors.ErrNoRefreshToken
	}

	access, err, shared := m.refreshing.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx, pair.RefreshToken)
	})
	if err != nil {
		return "", err
	}
	if shared {
		m.logger.Debug("Refresh call coalesced with another in-flight refresh")
	}

	return access.(string), nil
}

func (m *Manager) doRefresh(ctx context.Context, refreshToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/auth/refresh", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := m.client.Do(req)
	if err != nil {
		m.clearOnDeadSession()
		return "", fmt.Errorf("%w: %w", apperrors.ErrRefreshFailed, err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.clearOnDeadSession()
		m.logger.Warn("Refresh rejected by backend", "status_code", resp.StatusCode)
		return "", fmt.Errorf("%w: unexpected status %d", apperrors.ErrRefreshFailed, resp.StatusCode)
	}

	var pair models.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		m.clearOnDeadSession()
		return "", fmt.Errorf("%w: failed to decode response: %w", apperrors.ErrRefreshFailed, err)
	}

	if err := m.store.SetTokens(pair); err != nil {
		return "", fmt.Errorf("error while saving refreshed tokens. Err: %w", err)
	}

	m.logger.Debug("Token pair refreshed")
	return pair.AccessToken, nil
}

func (m *Manager) clearOnDeadSession() {
	if err := m.store.Clear(); err != nil {
		m.logger.Error("Failed to clear tokens after refresh failure", "error", err)
	}
}

// Do sends req bearing the stored access token. A 401 response triggers
// exactly one refresh and one replay with the new token; the replayed
// response is returned as-is, a second 401 included. Requests with a body
// must be replayable (http.NewRequest sets GetBody for the common readers).
func (m *Manager) Do(req *http.Request) (*http.Response, error) {
	pair, err := m.store.Tokens()
	if err != nil {
		return nil, err
	}
	if pair.AccessToken == "" {
		return nil, apperrors.ErrNoAccessToken
	}

	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Token expired: refresh once and replay the original request once
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	access, err := m.Refresh(req.Context())
	if err != nil {
		return nil, err
	}

	retry, err := replayableClone(req)
	if err != nil {
		return nil, err
	}
	retry.Header.Set("Authorization", "Bearer "+access)

	m.logger.Debug("Replaying request with refreshed token", "method", req.Method, "url", req.URL.String())
	resp, err = m.client.Do(retry)
	if err != nil {
		return nil, fmt.Errorf("failed to replay request: %w", err)
	}

	return resp, nil
}

// replayableClone rebuilds req with a fresh body so it can be sent again
func replayableClone(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}

	if req.GetBody == nil {
		return nil, errors.New("request body is not replayable")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("failed to recreate request body: %w", err)
	}
	clone.Body = body

	return clone, nil
}
