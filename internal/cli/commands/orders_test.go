package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/frog-cafe/frogcafe/internal/models"
)

func testOrders() []models.Order {
	created := models.Timestamp{Time: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)}
	return []models.Order{
		{ID: 8, CreatedAt: created, Status: models.StatusIssued, Items: []models.OrderItem{{MenuItem: models.MenuItem{ID: 1, DishName: "Fly pie"}, Quantity: 2}}},
		{ID: 5, CreatedAt: created, Status: models.StatusCreated, ToadID: intPtr(3)},
	}
}

func TestOrdersList(t *testing.T) {
	api, gate, _ := newTestDeps(testToken)
	api.orders = testOrders()
	var output bytes.Buffer

	if err := runOrdersList(context.Background(), "", WithClient(api), WithGate(gate), WithOutput(&output)); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	out := output.String()
	if strings.Index(out, "Создан") > strings.Index(out, "Выдан") {
		t.Errorf("expected orders sorted by id, got:\n%s", out)
	}
	if !strings.Contains(out, "2025-03-01") {
		t.Errorf("expected creation date, got:\n%s", out)
	}
}

func TestOrdersList_StatusFilter(t *testing.T) {
	tests := []struct {
		status   string
		expected string
		excluded string
	}{
		{status: "issued", expected: "Выдан", excluded: "Создан"},
		{status: "Создан", expected: "Создан", excluded: "Выдан"},
		{status: "1", expected: "Создан", excluded: "Выдан"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			api, gate, _ := newTestDeps(testToken)
			api.orders = testOrders()
			var output bytes.Buffer

			if err := runOrdersList(context.Background(), tt.status, WithClient(api), WithGate(gate), WithOutput(&output)); err != nil {
				t.Fatalf("expected success, got error: %v", err)
			}
			if !strings.Contains(output.String(), tt.expected) || strings.Contains(output.String(), tt.excluded) {
				t.Errorf("unexpected output for %q:\n%s", tt.status, output.String())
			}
		})
	}
}

func TestOrdersShow(t *testing.T) {
	api, gate, _ := newTestDeps(testToken)
	api.orders = testOrders()
	var output bytes.Buffer

	if err := runOrdersShow(context.Background(), 8, WithClient(api), WithGate(gate), WithOutput(&output)); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !strings.Contains(output.String(), "Fly pie") {
		t.Errorf("expected dishes, got:\n%s", output.String())
	}

	err := runOrdersShow(context.Background(), 404, WithClient(api), WithGate(gate), WithOutput(&bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), "Заказ не найден") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestOrdersCreate(t *testing.T) {
	api, gate, _ := newTestDeps(testToken)
	api.newOrder = models.Order{ID: 9, Status: models.StatusCreated, ToadID: intPtr(2)}
	var output bytes.Buffer

	if err := runOrdersCreate(context.Background(), []int{3, 3, 5}, WithClient(api), WithGate(gate), WithOutput(&output)); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if strings.Join(api.calls, "|") != "CreateOrder|AddToCart 9 [3 3 5]" {
		t.Errorf("unexpected calls: %v", api.calls)
	}
	if !strings.Contains(output.String(), "Created order 9 (toad 2)") {
		t.Errorf("unexpected output: %s", output.String())
	}
}

func TestOrdersCreate_WithoutItems(t *testing.T) {
	api, gate, _ := newTestDeps(testToken)
	api.newOrder = models.Order{ID: 9}

	if err := runOrdersCreate(context.Background(), nil, WithClient(api), WithGate(gate), WithOutput(&bytes.Buffer{})); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(api.calls) != 1 {
		t.Errorf("expected only CreateOrder, got %v", api.calls)
	}
}

func TestOrdersStatus(t *testing.T) {
	api, gate, _ := newTestDeps(testToken)
	var output bytes.Buffer

	if err := runOrdersStatus(context.Background(), 5, models.StatusIssuedID, WithClient(api), WithGate(gate), WithOutput(&output)); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !strings.Contains(output.String(), "Order 5 is now Выдан") {
		t.Errorf("unexpected output: %s", output.String())
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		arg      string
		expected int
		wantErr  bool
	}{
		{arg: "1", expected: 1},
		{arg: "7", expected: 7},
		{arg: "created", expected: models.StatusCreatedID},
		{arg: "Issued", expected: models.StatusIssuedID},
		{arg: "Выдан", expected: models.StatusIssuedID},
		{arg: "cooking", wantErr: true},
		{arg: "0", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseStatus(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseStatus(%q): expected error", tt.arg)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("parseStatus(%q) = %d, %v; want %d", tt.arg, got, err, tt.expected)
		}
	}
}

func TestOrdersRemove(t *testing.T) {
	api, gate, _ := newTestDeps(testToken)

	if err := runOrdersRemove(context.Background(), 8, WithClient(api), WithGate(gate), WithOutput(&bytes.Buffer{})); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if api.calls[0] != "DeleteOrder 8" {
		t.Errorf("unexpected calls: %v", api.calls)
	}
}

func TestOrdersClear(t *testing.T) {
	tests := []struct {
		name        string
		yes         bool
		prompter    *fakePrompter
		expectCall  bool
		expectErr   string
		expectAsked bool
	}{
		{name: "confirmed by flag", yes: true, prompter: &fakePrompter{}, expectCall: true},
		{name: "confirmed by prompt", prompter: &fakePrompter{interactive: true, confirm: true}, expectCall: true, expectAsked: true},
		{name: "declined", prompter: &fakePrompter{interactive: true, confirm: false}, expectErr: "aborted", expectAsked: true},
		{name: "non-interactive", prompter: &fakePrompter{}, expectErr: "use --yes", expectAsked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, gate, _ := newTestDeps(testToken)

			err := runOrdersClear(context.Background(), tt.yes,
				WithClient(api), WithGate(gate), WithOutput(&bytes.Buffer{}), WithPrompter(tt.prompter))

			if tt.expectErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.expectErr) {
					t.Fatalf("expected %q error, got %v", tt.expectErr, err)
				}
			} else if err != nil {
				t.Fatalf("expected success, got error: %v", err)
			}

			called := len(api.calls) == 1 && api.calls[0] == "ClearOrders"
			if called != tt.expectCall {
				t.Errorf("ClearOrders called = %v, want %v", called, tt.expectCall)
			}
			if asked := len(tt.prompter.asked) > 0; asked != tt.expectAsked {
				t.Errorf("prompted = %v, want %v", asked, tt.expectAsked)
			}
		})
	}
}
