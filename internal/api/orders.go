package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

// CreateOrder submits a checkout. The backend decrements stock atomically
// and rejects the whole order when any line exceeds availability; that
// rejection comes back as an *Error carrying the backend's detail message.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderCreateRequest) (*domain.OrderCreateResponse, error) {
	var resp domain.OrderCreateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/orders/", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TrackOrder looks up an order by id and the email it was placed with.
// Check IsNotFound and IsRateLimited on the returned error.
func (c *Client) TrackOrder(ctx context.Context, orderID int, email string) (*domain.Order, error) {
	q := url.Values{}
	q.Set("order_id", strconv.Itoa(orderID))
	q.Set("email", email)

	var order domain.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/track?"+q.Encode(), "", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders for the back office, optionally filtered by
// status and by farmer (orders containing at least one of that farmer's
// products).
func (c *Client) ListOrders(ctx context.Context, token string, status domain.OrderStatus, farmerID int64) ([]domain.Order, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	if farmerID > 0 {
		q.Set("farmer_id", strconv.FormatInt(farmerID, 10))
	}
	path := "/orders/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var orders []domain.Order
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status domain.OrderStatus) error {
	path := fmt.Sprintf("/orders/%d/status?status=%s", orderID, url.QueryEscape(string(status)))
	return c.doJSON(ctx, http.MethodPatch, path, token, nil, nil)
}

func (c *Client) CancelOrder(ctx context.Context, token string, orderID int64) error {
	path := fmt.Sprintf("/orders/%d/cancel", orderID)
	return c.doJSON(ctx, http.MethodPatch, path, token, nil, nil)
}
