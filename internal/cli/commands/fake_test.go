package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/frog-cafe/frogcafe/internal/client"
	"github.com/frog-cafe/frogcafe/internal/models"
	"github.com/frog-cafe/frogcafe/internal/session"
)

// fakeAPI simulates the backend for command tests. Calls are recorded as
// "Method arg..." strings.
type fakeAPI struct {
	store session.Store

	token    string
	menu     []models.MenuItem
	cart     []models.CartItem
	orders   []models.Order
	toads    []models.Toad
	display  []models.DisplayOrder
	newOrder models.Order

	failWith error
	calls    []string
	updated  *models.MenuItem
	added    []int
}

func (f *fakeAPI) record(format string, args ...interface{}) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.failWith
}

func unauthorized() error {
	return &client.APIError{Method: http.MethodGet, URL: "http://api.test", StatusCode: http.StatusUnauthorized, Detail: "Not authenticated"}
}

func (f *fakeAPI) BaseURL() string { return "http://api.test" }

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	if err := f.record("Login %s", username); err != nil {
		return nil, err
	}
	if f.store != nil {
		if err := f.store.Save(f.token); err != nil {
			return nil, err
		}
	}
	return &models.LoginResponse{AccessToken: f.token}, nil
}

func (f *fakeAPI) Logout() error {
	if f.store != nil {
		return f.store.Clear()
	}
	return nil
}

func (f *fakeAPI) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	if err := f.record("GetMenu"); err != nil {
		return nil, err
	}
	return append([]models.MenuItem(nil), f.menu...), nil
}

func (f *fakeAPI) CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	if err := f.record("CreateMenuItem %s", item.DishName); err != nil {
		return nil, err
	}
	item.ID = 42
	return &item, nil
}

func (f *fakeAPI) UpdateMenuItem(ctx context.Context, id int, item models.MenuItem) (*models.MenuItem, error) {
	if err := f.record("UpdateMenuItem %d", id); err != nil {
		return nil, err
	}
	f.updated = &item
	item.ID = id
	return &item, nil
}

func (f *fakeAPI) DeleteMenuItem(ctx context.Context, id int) error {
	return f.record("DeleteMenuItem %d", id)
}

func (f *fakeAPI) GetCart(ctx context.Context, orderID int) ([]models.CartItem, error) {
	if err := f.record("GetCart %d", orderID); err != nil {
		return nil, err
	}
	return f.cart, nil
}

func (f *fakeAPI) AddToCart(ctx context.Context, orderID int, menuItems []int) error {
	f.added = menuItems
	return f.record("AddToCart %d %v", orderID, menuItems)
}

func (f *fakeAPI) RemoveFromCart(ctx context.Context, orderID, menuItemID int) error {
	return f.record("RemoveFromCart %d %d", orderID, menuItemID)
}

func (f *fakeAPI) CreateOrder(ctx context.Context) (*models.Order, error) {
	if err := f.record("CreateOrder"); err != nil {
		return nil, err
	}
	order := f.newOrder
	return &order, nil
}

func (f *fakeAPI) GetOrders(ctx context.Context) ([]models.Order, error) {
	if err := f.record("GetOrders"); err != nil {
		return nil, err
	}
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeAPI) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	if err := f.record("GetOrder %d", id); err != nil {
		return nil, err
	}
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Detail: "Заказ не найден"}
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, id, statusID int) (*models.Order, error) {
	if err := f.record("UpdateOrderStatus %d %d", id, statusID); err != nil {
		return nil, err
	}
	status := models.StatusCreated
	if statusID == models.StatusIssuedID {
		status = models.StatusIssued
	}
	return &models.Order{ID: id, Status: status}, nil
}

func (f *fakeAPI) DeleteOrder(ctx context.Context, id int) error {
	return f.record("DeleteOrder %d", id)
}

func (f *fakeAPI) ClearOrders(ctx context.Context) error {
	return f.record("ClearOrders")
}

func (f *fakeAPI) GetToads(ctx context.Context) ([]models.Toad, error) {
	if err := f.record("GetToads"); err != nil {
		return nil, err
	}
	return append([]models.Toad(nil), f.toads...), nil
}

func (f *fakeAPI) UpdateToadStatus(ctx context.Context, id int, isTaken bool) (*models.Toad, error) {
	if err := f.record("UpdateToadStatus %d %t", id, isTaken); err != nil {
		return nil, err
	}
	return &models.Toad{ID: id, IsTaken: isTaken}, nil
}

func (f *fakeAPI) GetDisplayData(ctx context.Context) ([]models.DisplayOrder, error) {
	if err := f.record("GetDisplayData"); err != nil {
		return nil, err
	}
	return f.display, nil
}

// fakePrompter answers prompts with canned values
type fakePrompter struct {
	username    string
	password    string
	confirm     bool
	interactive bool
	asked       []string
}

func (p *fakePrompter) Username() (string, error) {
	p.asked = append(p.asked, "username")
	if !p.interactive {
		return "", ErrNotInteractive
	}
	return p.username, nil
}

func (p *fakePrompter) Password() (string, error) {
	p.asked = append(p.asked, "password")
	if !p.interactive {
		return "", ErrNotInteractive
	}
	return p.password, nil
}

func (p *fakePrompter) Confirm(label string) (bool, error) {
	p.asked = append(p.asked, "confirm")
	if !p.interactive {
		return false, ErrNotInteractive
	}
	return p.confirm, nil
}
