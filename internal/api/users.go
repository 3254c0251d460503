package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ionutT77/PourPal/internal/models"
)

// GetProfile fetches another user's public profile.
func (c *Client) GetProfile(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := c.do(ctx, "users.get", http.MethodGet, fmt.Sprintf("/users/%d/", userID), nil, nil, &user)
	return user, err
}

// UpdateProfile merges the patch into the caller's profile and returns the
// updated user.
func (c *Client) UpdateProfile(ctx context.Context, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := c.do(ctx, "users.update", http.MethodPut, "/users/profile/", nil, patch, &user)
	return user, err
}

// SearchUsers finds users by name or username.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	q := url.Values{"q": {query}}
	var users []models.User
	err := c.do(ctx, "users.search", http.MethodGet, "/users/search/", q, nil, &users)
	return users, err
}
