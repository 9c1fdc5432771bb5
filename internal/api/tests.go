package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/quizdesk/quizdesk/internal/apperrors"
	"github.com/quizdesk/quizdesk/internal/models"
)

// ListTests fetches the whole test catalog
func (c *Client) ListTests(ctx context.Context) ([]models.Test, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/tests", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var tests []models.Test
	return tests, c.decodeInto(resp, &tests)
}

// GetTest fetches a single test by id
func (c *Client) GetTest(ctx context.Context, id string) (models.Test, error) {
	var test models.Test

	req, err := c.newRequest(ctx, http.MethodGet, "/tests/"+id, nil)
	if err != nil {
		return test, err
	}

	resp, err := c.do(req)
	if err != nil {
		return test, err
	}

	err = c.decodeInto(resp, &test)
	if status := apperrors.StatusOf(err); status == http.StatusNotFound {
		return test, errors.Join(apperrors.ErrTestNotFound, err)
	}

	return test, err
}

// CreateTest submits a new test. The id must be set by the caller.
func (c *Client) CreateTest(ctx context.Context, test models.Test) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/tests", test)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}

	if err := c.decodeInto(resp, nil); err != nil {
		return err
	}

	c.logger.Info("Test created", "test_id", test.ID, "title", test.Title)
	return nil
}

// DeleteTest removes a test by id
func (c *Client) DeleteTest(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/tests/"+id, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}

	err = c.decodeInto(resp, nil)
	if status := apperrors.StatusOf(err); status == http.StatusNotFound {
		return errors.Join(apperrors.ErrTestNotFound, err)
	}
	if err != nil {
		return err
	}

	c.logger.Info("Test deleted", "test_id", id)
	return nil
}
