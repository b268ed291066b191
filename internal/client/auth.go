package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/frog-cafe/frogcafe/internal/models"
	"github.com/frog-cafe/frogcafe/internal/session"
)

// Login authenticates against the backend and stores the returned token
// in the client's session store
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var loginResp models.LoginResponse
	err := c.call(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body: models.LoginRequest{
			Username: username,
			Password: password,
		},
	}, &loginResp)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := session.NewGate(c.store).Login(loginResp.SessionToken()); err != nil {
		if errors.Is(err, session.ErrEmptyToken) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to save authentication token: %w", err)
	}

	c.logger.Info().Str("username", username).Msg("Logged in")
	return &loginResp, nil
}

// Logout forgets the stored token. The backend keeps no session to end.
func (c *Client) Logout() error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear authentication token: %w", err)
	}
	return nil
}
