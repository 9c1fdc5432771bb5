package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/quizdesk/quizdesk/internal/models"
)

// CurrentUser fetches the profile of the authenticated user
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User

	req, err := c.newRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return user, err
	}

	resp, err := c.doAuth(req)
	if err != nil {
		return user, err
	}

	return user, c.decodeInto(resp, &user)
}

// UpdateNickname changes the nickname of the authenticated user.
// The backend also exposes a legacy unauthenticated POST /updateNickname;
// this client only speaks the authenticated path.
func (c *Client) UpdateNickname(ctx context.Context, nickname string) error {
	type nicknameRequest struct {
		Nickname string `json:"nickname"`
	}

	req, err := c.newRequest(ctx, http.MethodPut, "/user/nickname", nicknameRequest{Nickname: nickname})
	if err != nil {
		return err
	}

	resp, err := c.doAuth(req)
	if err != nil {
		return err
	}

	if err := c.decodeInto(resp, nil); err != nil {
		return err
	}

	c.logger.Info("Nickname updated", "nickname", nickname)
	return nil
}

// SearchUsers performs the authenticated server-side user search
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/search?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.doAuth(req)
	if err != nil {
		return nil, err
	}

	var users []models.User
	return users, c.decodeInto(resp, &users)
}

// SearchByNickname is the public substring search by nickname
func (c *Client) SearchByNickname(ctx context.Context, nickname string) ([]models.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users?nickname="+url.QueryEscape(nickname), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var users []models.User
	return users, c.decodeInto(resp, &users)
}

// Activity fetches the activity feed of the authenticated user.
// Entries are decoded one by one: a single malformed record is skipped
// with a warning instead of aborting the whole feed.
func (c *Client) Activity(ctx context.Context) ([]models.Activity, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user/activity", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.doAuth(req)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := c.decodeInto(resp, &raw); err != nil {
		return nil, err
	}

	activities := make([]models.Activity, 0, len(raw))
	for i, data := range raw {
		var entry models.Activity
		if err := json.Unmarshal(data, &entry); err != nil {
			c.logger.Warn("Skipping malformed activity entry", "index", i, "error", err)
			continue
		}
		activities = append(activities, entry)
	}

	return activities, nil
}
