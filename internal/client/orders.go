package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frog-cafe/frogcafe/internal/models"
)

// CreateOrder opens a new empty order. The backend assigns the first free toad.
func (c *Client) CreateOrder(ctx context.Context) (*models.Order, error) {
	var order models.Order
	if err := c.call(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   "/api/orders/",
		Body:   models.OrderCreateRequest{},
	}, &order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// GetOrders returns every order, newest first
func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.call(ctx, Descriptor{Method: http.MethodGet, Path: "/api/orders/"}, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns a single order
func (c *Client) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	if err := c.call(ctx, Descriptor{Method: http.MethodGet, Path: fmt.Sprintf("/api/orders/%d", id)}, &order); err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to another status
func (c *Client) UpdateOrderStatus(ctx context.Context, id, statusID int) (*models.Order, error) {
	var order models.Order
	if err := c.call(ctx, Descriptor{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/orders/%d/status", id),
		Body:   models.OrderStatusUpdate{StatusID: statusID},
	}, &order); err != nil {
		return nil, fmt.Errorf("failed to update status of order %d: %w", id, err)
	}
	return &order, nil
}

// DeleteOrder deletes an issued order and frees its toad
func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	if err := c.call(ctx, Descriptor{Method: http.MethodDelete, Path: fmt.Sprintf("/api/orders/%d", id)}, nil); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	return nil
}

// ClearOrders deletes every order and cart row
func (c *Client) ClearOrders(ctx context.Context) error {
	if err := c.call(ctx, Descriptor{Method: http.MethodDelete, Path: "/api/orders/"}, nil); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	return nil
}
