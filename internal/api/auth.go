package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/quizdesk/quizdesk/internal/apperrors"
	"github.com/quizdesk/quizdesk/internal/models"
)

const (
	ProviderYandex = "yandex"
	ProviderGitHub = "github"
)

// Login performs username/password authentication and stores the
// returned token pair in the session.
func (c *Client) Login(ctx context.Context, username string, password string) (models.TokenPair, error) {
	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var pair models.TokenPair

	req, err := c.newRequest(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: password})
	if err != nil {
		return pair, err
	}

	resp, err := c.do(req)
	if err != nil {
		return pair, err
	}
	if err := c.decodeInto(resp, &pair); err != nil {
		return pair, err
	}

	if !pair.IsComplete() {
		return pair, fmt.Errorf("login response missed tokens")
	}
	if err := c.session.SetTokens(pair); err != nil {
		return pair, fmt.Errorf("error while saving tokens. Err: %w", err)
	}

	c.logger.Info("Logged in", "username", username)
	return pair, nil
}

// Logout ends the current session, or every session of the user when all
// is set. Tokens are cleared locally even if they were already dead.
func (c *Client) Logout(ctx context.Context, all bool) error {
	path := "/auth/logout"
	if all {
		path += "?all=true"
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.doAuth(req)
	if err != nil {
		// Refresh failure already cleared the tokens: logout achieved its goal
		if errors.Is(err, apperrors.ErrRefreshFailed) {
			return nil
		}
		return err
	}
	if err := c.decodeInto(resp, nil); err != nil {
		return err
	}

	if err := c.session.Clear(); err != nil {
		return fmt.Errorf("error while clearing tokens. Err: %w", err)
	}

	c.logger.Info("Logged out", "all_sessions", all)
	return nil
}

// OAuthLoginURL resolves the third-party login entry for the given
// provider without following the redirect. The caller opens the returned
// URL in a browser.
func (c *Client) OAuthLoginURL(ctx context.Context, provider string) (string, error) {
	if provider != ProviderYandex && provider != ProviderGitHub {
		return "", fmt.Errorf("unknown oauth provider: %q", provider)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/auth/login?type="+provider, nil)
	if err != nil {
		return "", err
	}

	// Separate client: the redirect is the answer, not a hop to follow
	noRedirect := *c.client
	noRedirect.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noRedirect.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 300 || resp.StatusCode > 399 {
		return "", apperrors.NewRequestError(resp.StatusCode, "expected a redirect")
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("redirect response missed location header")
	}

	return location, nil
}
