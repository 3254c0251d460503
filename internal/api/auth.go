package api

import (
	"context"
	"net/http"

	"github.com/ionutT77/PourPal/internal/models"
)

// Registration is the payload for creating an account.
type Registration struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Is18Plus        bool   `json:"is_18_plus"`
}

type userEnvelope struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// Register creates a new account. Field-level problems come back as a
// validation Error with Fields populated.
func (c *Client) Register(ctx context.Context, reg Registration) (models.User, error) {
	var env userEnvelope
	if err := c.do(ctx, "users.register", http.MethodPost, "/users/register/", nil, reg, &env); err != nil {
		return models.User{}, err
	}
	return env.User, nil
}

// Login exchanges credentials for an identity. The session cookie lands in
// the client's jar as a side effect.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var env userEnvelope
	if err := c.do(ctx, "users.login", http.MethodPost, "/users/login/", nil, body, &env); err != nil {
		return models.User{}, err
	}
	return env.User, nil
}

// Logout invalidates the remote session. Best effort: callers clear local
// state regardless of the outcome here.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "users.logout", http.MethodPost, "/users/logout/", nil, nil, nil)
}
