package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/frog-cafe/frogcafe/internal/models"
)

// NewMenuCmd creates the menu command group
func NewMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Browse and manage the menu",
	}

	cmd.AddCommand(newMenuListCmd())
	cmd.AddCommand(newMenuAddCmd())
	cmd.AddCommand(newMenuUpdateCmd())
	cmd.AddCommand(newMenuRemoveCmd())

	return cmd
}

func newMenuListCmd() *cobra.Command {
	var available bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List menu items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuList(cmd.Context(), available)
		},
	}

	cmd.Flags().BoolVar(&available, "available", false, "Only show dishes that can be ordered")

	return cmd
}

func runMenuList(ctx context.Context, availableOnly bool, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	items, err := o.client.GetMenu(ctx)
	if err != nil {
		return notLoggedIn(err)
	}

	if availableOnly {
		filtered := items[:0]
		for _, item := range items {
			if !item.SoldOut() {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if len(items) == 0 && o.format == formatTable {
		fmt.Fprintln(o.out, "No menu items found.")
		return nil
	}

	return render(o.out, o.format, items, func(w *tabwriter.Writer) {
		header(w, "ID", "DISH", "CATEGORY", "AVAILABLE", "LEFT")
		for _, item := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				item.ID,
				item.DishName,
				item.CategoryName(),
				yesNo(!item.SoldOut()),
				intOrDash(item.QuantityLeft),
			)
		}
	})
}

// menuItemFlags are the editable menu item fields
type menuItemFlags struct {
	name        string
	category    string
	description string
	image       string
	quantity    int
	unavailable bool
}

func (f *menuItemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Dish name")
	cmd.Flags().StringVar(&f.category, "category", "", "Category")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.image, "image", "", "Image URL")
	cmd.Flags().IntVar(&f.quantity, "quantity", -1, "Portions left (-1 for unlimited)")
	cmd.Flags().BoolVar(&f.unavailable, "unavailable", false, "Mark the dish as not available")
}

// apply copies the flags the user set onto item
func (f *menuItemFlags) apply(cmd *cobra.Command, item *models.MenuItem) {
	changed := cmd.Flags().Changed
	if changed("name") {
		item.DishName = f.name
	}
	if changed("category") {
		item.Category = optionalString(f.category)
	}
	if changed("description") {
		item.Description = optionalString(f.description)
	}
	if changed("image") {
		item.Image = optionalString(f.image)
	}
	if changed("quantity") {
		if f.quantity < 0 {
			item.QuantityLeft = nil
		} else {
			quantity := f.quantity
			item.QuantityLeft = &quantity
		}
	}
	if changed("unavailable") {
		item.IsAvailable = !f.unavailable
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newMenuAddCmd() *cobra.Command {
	var flags menuItemFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a dish to the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item := models.MenuItem{IsAvailable: true}
			flags.apply(cmd, &item)
			return runMenuAdd(cmd.Context(), item)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runMenuAdd(ctx context.Context, item models.MenuItem, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	if item.DishName == "" {
		return fmt.Errorf("dish name is required")
	}

	created, err := o.client.CreateMenuItem(ctx, item)
	if err != nil {
		return notLoggedIn(err)
	}

	fmt.Fprintf(o.out, "✓ Added %q (id %d)\n", created.DishName, created.ID)
	return nil
}

func newMenuUpdateCmd() *cobra.Command {
	var flags menuItemFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a menu item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("menu item", args[0])
			if err != nil {
				return err
			}
			return runMenuUpdate(cmd.Context(), id, func(item *models.MenuItem) {
				flags.apply(cmd, item)
			})
		},
	}

	flags.register(cmd)

	return cmd
}

// runMenuUpdate fetches the current item, applies edit and sends the full item back
func runMenuUpdate(ctx context.Context, id int, edit func(*models.MenuItem), opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	items, err := o.client.GetMenu(ctx)
	if err != nil {
		return notLoggedIn(err)
	}

	var current *models.MenuItem
	for i := range items {
		if items[i].ID == id {
			current = &items[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("menu item %d not found", id)
	}

	updated := *current
	edit(&updated)
	updated.ID = 0

	result, err := o.client.UpdateMenuItem(ctx, id, updated)
	if err != nil {
		return notLoggedIn(err)
	}

	fmt.Fprintf(o.out, "✓ Updated %q (id %d)\n", result.DishName, id)
	return nil
}

func newMenuRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a dish from the menu",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("menu item", args[0])
			if err != nil {
				return err
			}
			return runMenuRemove(cmd.Context(), id)
		},
	}
}

func runMenuRemove(ctx context.Context, id int, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	if err := o.client.DeleteMenuItem(ctx, id); err != nil {
		return notLoggedIn(err)
	}

	fmt.Fprintf(o.out, "✓ Removed menu item %d\n", id)
	return nil
}
