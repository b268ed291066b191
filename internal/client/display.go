package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frog-cafe/frogcafe/internal/models"
)

// GetDisplayData returns the TV display feed
func (c *Client) GetDisplayData(ctx context.Context) ([]models.DisplayOrder, error) {
	var orders []models.DisplayOrder
	if err := c.call(ctx, Descriptor{Method: http.MethodGet, Path: "/api/tv/orders"}, &orders); err != nil {
		return nil, fmt.Errorf("failed to get display feed: %w", err)
	}
	return orders, nil
}

// GetTVOrders is GetDisplayData under the name the display screens use
func (c *Client) GetTVOrders(ctx context.Context) ([]models.DisplayOrder, error) {
	return c.GetDisplayData(ctx)
}
