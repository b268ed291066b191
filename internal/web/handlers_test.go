package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frog-cafe/frogcafe/internal/models"
)

func strPtr(s string) *string { return &s }

func TestGroupMenu(t *testing.T) {
	zero := 0
	items := []models.MenuItem{
		{ID: 1, DishName: "Pond tea", IsAvailable: true, Category: strPtr("Drinks")},
		{ID: 2, DishName: "Moss cake", IsAvailable: true},
		{ID: 3, DishName: "Fly pie", IsAvailable: true, Category: strPtr("Bakery"), QuantityLeft: &zero},
		{ID: 4, DishName: "Reed roll", IsAvailable: true, Category: strPtr("Bakery")},
		{ID: 5, DishName: "Lily pad latte", IsAvailable: true, Category: strPtr("Drinks")},
		{ID: 6, DishName: "Mud shake", IsAvailable: false, Category: strPtr("Drinks")},
	}

	groups := groupMenu(items)
	require.Len(t, groups, 3)

	assert.Equal(t, "Bakery", groups[0].Name)
	assert.Equal(t, "Drinks", groups[1].Name)
	assert.Equal(t, "Other", groups[2].Name)

	assert.Len(t, groups[0].Items, 1, "sold out dishes are hidden")
	require.Len(t, groups[1].Items, 2)
	assert.Equal(t, "Pond tea", groups[1].Items[0].DishName, "menu order is kept within a category")
	assert.Equal(t, "Lily pad latte", groups[1].Items[1].DishName)
}

func TestMenuItemForm(t *testing.T) {
	item := menuItemForm{
		DishName:     "  Fly pie ",
		Description:  "",
		Category:     "Bakery",
		QuantityLeft: "3",
		IsAvailable:  true,
	}.menuItem()

	assert.Equal(t, "Fly pie", item.DishName)
	assert.Nil(t, item.Description)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Bakery", *item.Category)
	require.NotNil(t, item.QuantityLeft)
	assert.Equal(t, 3, *item.QuantityLeft)

	item = menuItemForm{DishName: "Fly pie"}.menuItem()
	assert.Nil(t, item.QuantityLeft, "blank quantity means unlimited")
}

func TestLink(t *testing.T) {
	tests := []struct {
		basePath string
		path     string
		expected string
	}{
		{basePath: "/", path: "/", expected: "/"},
		{basePath: "/", path: "/menu", expected: "/menu"},
		{basePath: "/cafe", path: "/", expected: "/cafe/"},
		{basePath: "/cafe/", path: "/admin", expected: "/cafe/admin"},
	}

	for _, tt := range tests {
		s := &Server{}
		s.config.BasePath = tt.basePath
		assert.Equal(t, tt.expected, s.link(tt.path), "base %q path %q", tt.basePath, tt.path)
	}
}
