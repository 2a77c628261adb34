package api

import (
	"context"
	"net/http"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	req := domain.LoginRequest{Username: email, Password: password}
	var resp domain.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the token server-side. Callers treat failure as
// best-effort and clear the local session regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
