package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frog-cafe/frogcafe/internal/models"
)

// GetMenu returns every menu item
func (c *Client) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.call(ctx, Descriptor{Method: http.MethodGet, Path: "/api/menu/"}, &items); err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	return items, nil
}

// CreateMenuItem adds a dish to the menu
func (c *Client) CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	var created models.MenuItem
	if err := c.call(ctx, Descriptor{Method: http.MethodPost, Path: "/api/menu", Body: item}, &created); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &created, nil
}

// UpdateMenuItem replaces the dish with the given id
func (c *Client) UpdateMenuItem(ctx context.Context, id int, item models.MenuItem) (*models.MenuItem, error) {
	var updated models.MenuItem
	if err := c.call(ctx, Descriptor{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/menu/%d", id),
		Body:   item,
	}, &updated); err != nil {
		return nil, fmt.Errorf("failed to update menu item %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteMenuItem removes the dish with the given id
func (c *Client) DeleteMenuItem(ctx context.Context, id int) error {
	if err := c.call(ctx, Descriptor{Method: http.MethodDelete, Path: fmt.Sprintf("/api/menu/%d", id)}, nil); err != nil {
		return fmt.Errorf("failed to delete menu item %d: %w", id, err)
	}
	return nil
}
