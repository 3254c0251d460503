package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ionutT77/PourPal/internal/models"
)

// ListHangouts returns upcoming hangouts matching the filters.
func (c *Client) ListHangouts(ctx context.Context, filters models.HangoutFilters) ([]models.Hangout, error) {
	q := url.Values{}
	if filters.Location != "" {
		q.Set("location", filters.Location)
	}
	if !filters.After.IsZero() {
		q.Set("after", filters.After.Format(time.RFC3339))
	}
	if !filters.Before.IsZero() {
		q.Set("before", filters.Before.Format(time.RFC3339))
	}

	var hangouts []models.Hangout
	err := c.do(ctx, "hangouts.list", http.MethodGet, "/hangouts/", q, nil, &hangouts)
	return hangouts, err
}

// GetHangout fetches one hangout with its participants.
func (c *Client) GetHangout(ctx context.Context, id int) (models.Hangout, error) {
	var hangout models.Hangout
	err := c.do(ctx, "hangouts.get", http.MethodGet, fmt.Sprintf("/hangouts/%d/", id), nil, nil, &hangout)
	return hangout, err
}

// CreateHangout creates a hangout; the caller becomes creator and first
// participant on the server side.
func (c *Client) CreateHangout(ctx context.Context, draft models.HangoutDraft) (models.Hangout, error) {
	var hangout models.Hangout
	err := c.do(ctx, "hangouts.create", http.MethodPost, "/hangouts/", nil, draft, &hangout)
	return hangout, err
}

type hangoutEnvelope struct {
	Message string         `json:"message"`
	Hangout models.Hangout `json:"hangout"`
}

// JoinHangout joins a hangout. A full hangout or repeat join surfaces as a
// conflict Error.
func (c *Client) JoinHangout(ctx context.Context, id int) (models.Hangout, error) {
	var env hangoutEnvelope
	err := c.do(ctx, "hangouts.join", http.MethodPost, fmt.Sprintf("/hangouts/%d/join/", id), nil, nil, &env)
	return env.Hangout, err
}

// LeaveHangout leaves a hangout. Creators cannot leave their own hangout.
func (c *Client) LeaveHangout(ctx context.Context, id int) (models.Hangout, error) {
	var env hangoutEnvelope
	err := c.do(ctx, "hangouts.leave", http.MethodPost, fmt.Sprintf("/hangouts/%d/leave/", id), nil, nil, &env)
	return env.Hangout, err
}

// EndHangout deletes a hangout. Creator only.
func (c *Client) EndHangout(ctx context.Context, id int) error {
	return c.do(ctx, "hangouts.end", http.MethodDelete, fmt.Sprintf("/hangouts/%d/", id), nil, nil, nil)
}

// MyHangouts returns the caller's hangouts split into upcoming and past.
func (c *Client) MyHangouts(ctx context.Context) (models.MyHangouts, error) {
	var mine models.MyHangouts
	err := c.do(ctx, "hangouts.mine", http.MethodGet, "/hangouts/my-hangouts/", nil, nil, &mine)
	return mine, err
}
