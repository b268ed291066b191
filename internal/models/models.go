package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Order status names as stored by the backend
const (
	StatusCreated = "Создан"
	StatusIssued  = "Выдан"
)

// Order status ids seeded in the backend's order_statuses table
const (
	StatusCreatedID = 1
	StatusIssuedID  = 2
)

// OrderStatus pairs a status id with its display name
type OrderStatus struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// KnownStatuses lists the statuses an operator can move an order to
var KnownStatuses = []OrderStatus{
	{ID: StatusCreatedID, Name: StatusCreated},
	{ID: StatusIssuedID, Name: StatusIssued},
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response. The backend has shipped
// both "token" and "access_token" so both are accepted.
type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
}

// SessionToken returns whichever token field the backend filled in,
// trimmed. Blank fields count as missing.
func (r LoginResponse) SessionToken() string {
	if token := strings.TrimSpace(r.AccessToken); token != "" {
		return token
	}
	return strings.TrimSpace(r.Token)
}

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID           int     `json:"id,omitempty" yaml:"id"`
	DishName     string  `json:"dish_name" yaml:"dish_name" validate:"required"`
	Image        *string `json:"image,omitempty" yaml:"image,omitempty"`
	IsAvailable  bool    `json:"is_available" yaml:"is_available"`
	Description  *string `json:"description,omitempty" yaml:"description,omitempty"`
	Category     *string `json:"category,omitempty" yaml:"category,omitempty"`
	QuantityLeft *int    `json:"quantity_left,omitempty" yaml:"quantity_left,omitempty" validate:"omitempty,min=0"`
}

// CategoryName returns the category or a placeholder for uncategorised dishes
func (m MenuItem) CategoryName() string {
	if m.Category == nil || *m.Category == "" {
		return "Other"
	}
	return *m.Category
}

// SoldOut reports whether the dish cannot be ordered right now
func (m MenuItem) SoldOut() bool {
	if !m.IsAvailable {
		return true
	}
	return m.QuantityLeft != nil && *m.QuantityLeft <= 0
}

// OrderItem is a menu item inside an order together with how many were ordered
type OrderItem struct {
	MenuItem `yaml:",inline"`
	Quantity int `json:"quantity" yaml:"quantity"`
}

// Order represents an order with its line items
type Order struct {
	ID        int         `json:"id" yaml:"id"`
	CreatedAt Timestamp   `json:"created_at" yaml:"created_at"`
	Status    string      `json:"status" yaml:"status"`
	ToadID    *int        `json:"toad_id,omitempty" yaml:"toad_id,omitempty"`
	Items     []OrderItem `json:"items" yaml:"items"`
}

// ItemCount returns the total number of dishes in the order
func (o Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// Deletable reports whether the backend will accept a delete for this order
func (o Order) Deletable() bool {
	return o.Status == StatusIssued
}

// OrderCreateRequest is the (currently empty) body for order creation
type OrderCreateRequest struct{}

// OrderStatusUpdate represents the order status update request
type OrderStatusUpdate struct {
	StatusID int `json:"status_id" validate:"min=1"`
}

// CartAddRequest adds menu items to an order's cart. Repeating an id adds it twice.
type CartAddRequest struct {
	MenuItems []int `json:"menu_items" validate:"required,min=1"`
}

// CartItem represents a row of an order's cart
type CartItem struct {
	ID       int    `json:"id,omitempty" yaml:"id,omitempty"`
	OrderID  int    `json:"order_id,omitempty" yaml:"order_id,omitempty"`
	MenuItem int    `json:"menu_item,omitempty" yaml:"menu_item,omitempty"`
	DishName string `json:"dish_name,omitempty" yaml:"dish_name,omitempty"`
	Quantity int    `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// Toad is a numbered pickup station handed to a customer with an order
type Toad struct {
	ID      int  `json:"id" yaml:"id"`
	IsTaken bool `json:"is_taken" yaml:"is_taken"`
}

// ToadStatusUpdate represents the toad status update request
type ToadStatusUpdate struct {
	IsTaken bool `json:"is_taken"`
}

// DisplayOrder is a row of the TV display feed
type DisplayOrder struct {
	ID        int         `json:"id" yaml:"id"`
	Status    string      `json:"status" yaml:"status"`
	ToadID    *int        `json:"toad_id,omitempty" yaml:"toad_id,omitempty"`
	CreatedAt *Timestamp  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Items     []OrderItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// Timestamp accepts the backend's timestamps, which may or may not carry a
// zone offset. Zoneless values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", raw)
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// MarshalYAML implements yaml.Marshaler
func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return "", nil
	}
	return t.Format(time.RFC3339), nil
}

// ErrorBody is the backend's error envelope. Detail is either a string or
// a list of validation errors, so it is kept raw.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// Message renders Detail as a human readable string
func (e ErrorBody) Message() string {
	if len(e.Detail) == 0 || string(e.Detail) == "null" {
		return ""
	}

	var text string
	if err := json.Unmarshal(e.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(e.Detail, &items); err == nil && len(items) > 0 {
		msg := items[0].Msg
		for _, item := range items[1:] {
			msg += "; " + item.Msg
		}
		return msg
	}

	return string(e.Detail)
}
