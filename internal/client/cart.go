package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frog-cafe/frogcafe/internal/models"
)

// GetCart returns the cart rows of an order
func (c *Client) GetCart(ctx context.Context, orderID int) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.call(ctx, Descriptor{Method: http.MethodGet, Path: fmt.Sprintf("/api/cart/%d", orderID)}, &items); err != nil {
		return nil, fmt.Errorf("failed to get cart for order %d: %w", orderID, err)
	}
	return items, nil
}

// AddToCart adds menu items to an order. Repeat an id to add it more than once.
func (c *Client) AddToCart(ctx context.Context, orderID int, menuItems []int) error {
	if len(menuItems) == 0 {
		return fmt.Errorf("no menu items to add to order %d", orderID)
	}

	err := c.call(ctx, Descriptor{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/cart/%d", orderID),
		Body:   models.CartAddRequest{MenuItems: menuItems},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to add items to order %d: %w", orderID, err)
	}
	return nil
}

// RemoveFromCart removes a menu item from an order
func (c *Client) RemoveFromCart(ctx context.Context, orderID, menuItemID int) error {
	err := c.call(ctx, Descriptor{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/cart/%d/%d", orderID, menuItemID),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to remove item %d from order %d: %w", menuItemID, orderID, err)
	}
	return nil
}
