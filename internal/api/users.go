package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, token string, userID int64, role domain.UserRole) error {
	path := fmt.Sprintf("/users/%d/role?role=%s", userID, url.QueryEscape(string(role)))
	return c.doJSON(ctx, http.MethodPatch, path, token, nil, nil)
}
