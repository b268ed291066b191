package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCartCmd creates the cart command group
func NewCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and edit the dishes of an order",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <order-id>",
		Short: "List the dishes in an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID("order", args[0])
			if err != nil {
				return err
			}
			return runCartShow(cmd.Context(), orderID)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <order-id> <menu-item-id>...",
		Short: "Add dishes to an order, repeat an id to add it several times",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID("order", args[0])
			if err != nil {
				return err
			}
			items, err := parseIDs("menu item", args[1:])
			if err != nil {
				return err
			}
			return runCartAdd(cmd.Context(), orderID, items)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <order-id> <menu-item-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a dish from an order",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID("order", args[0])
			if err != nil {
				return err
			}
			itemID, err := parseID("menu item", args[1])
			if err != nil {
				return err
			}
			return runCartRemove(cmd.Context(), orderID, itemID)
		},
	})

	return cmd
}

func parseIDs(kind string, args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(kind, arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runCartShow(ctx context.Context, orderID int, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	items, err := o.client.GetCart(ctx, orderID)
	if err != nil {
		return notLoggedIn(err)
	}

	if len(items) == 0 && o.format == formatTable {
		fmt.Fprintf(o.out, "Order %d has no dishes.\n", orderID)
		return nil
	}

	return render(o.out, o.format, items, func(w *tabwriter.Writer) {
		header(w, "MENU ITEM", "DISH", "QUANTITY")
		for _, item := range items {
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			fmt.Fprintf(w, "%d\t%s\t%d\n", item.MenuItem, orDash(item.DishName), quantity)
		}
	})
}

func runCartAdd(ctx context.Context, orderID int, items []int, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	if err := o.client.AddToCart(ctx, orderID, items); err != nil {
		return notLoggedIn(err)
	}

	fmt.Fprintf(o.out, "✓ Added %d dish(es) to order %d\n", len(items), orderID)
	return nil
}

func runCartRemove(ctx context.Context, orderID, itemID int, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	if err := o.client.RemoveFromCart(ctx, orderID, itemID); err != nil {
		return notLoggedIn(err)
	}

	fmt.Fprintf(o.out, "✓ Removed menu item %d from order %d\n", itemID, orderID)
	return nil
}
