package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frog-cafe/frogcafe/internal/models"
)

// GetToads returns every pickup station and whether it is taken
func (c *Client) GetToads(ctx context.Context) ([]models.Toad, error) {
	var toads []models.Toad
	if err := c.call(ctx, Descriptor{Method: http.MethodGet, Path: "/api/toads"}, &toads); err != nil {
		return nil, fmt.Errorf("failed to list toads: %w", err)
	}
	return toads, nil
}

// UpdateToadStatus marks a toad taken or free
func (c *Client) UpdateToadStatus(ctx context.Context, id int, isTaken bool) (*models.Toad, error) {
	var toad models.Toad
	if err := c.call(ctx, Descriptor{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/toads/%d", id),
		Body:   models.ToadStatusUpdate{IsTaken: isTaken},
	}, &toad); err != nil {
		return nil, fmt.Errorf("failed to update toad %d: %w", id, err)
	}
	return &toad, nil
}
