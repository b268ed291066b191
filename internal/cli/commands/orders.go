package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/frog-cafe/frogcafe/internal/models"
)

// NewOrdersCmd creates the orders command group
func NewOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Place and manage orders",
	}

	var status string
	list := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List orders",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrdersList(cmd.Context(), status)
		},
	}
	list.Flags().StringVar(&status, "status", "", "Only show orders with this status (created, issued or a status name)")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one order with its dishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("order", args[0])
			if err != nil {
				return err
			}
			return runOrdersShow(cmd.Context(), id)
		},
	})

	var items []int
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an order, optionally with dishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrdersCreate(cmd.Context(), items)
		},
	}
	create.Flags().IntSliceVar(&items, "item", nil, "Menu item id to add, repeat for more (e.g. --item 3 --item 3 --item 5)")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an order to another status (created, issued or a status id)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("order", args[0])
			if err != nil {
				return err
			}
			statusID, err := parseStatus(args[1])
			if err != nil {
				return err
			}
			return runOrdersStatus(cmd.Context(), id, statusID)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an issued order",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("order", args[0])
			if err != nil {
				return err
			}
			return runOrdersRemove(cmd.Context(), id)
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrdersClear(cmd.Context(), yes)
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.AddCommand(clearCmd)

	return cmd
}

// parseStatus accepts a status id, its name or an English alias
func parseStatus(arg string) (int, error) {
	if id, err := strconv.Atoi(arg); err == nil && id > 0 {
		return id, nil
	}

	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "created", "new", strings.ToLower(models.StatusCreated):
		return models.StatusCreatedID, nil
	case "issued", "done", strings.ToLower(models.StatusIssued):
		return models.StatusIssuedID, nil
	}
	return 0, fmt.Errorf("unknown order status %q (use created, issued or a status id)", arg)
}

// statusName maps English aliases to the backend's status names for filtering
func statusName(arg string) string {
	id, err := parseStatus(arg)
	if err != nil {
		return arg
	}
	for _, s := range models.KnownStatuses {
		if s.ID == id {
			return s.Name
		}
	}
	return arg
}

func runOrdersList(ctx context.Context, status string, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	orders, err := o.client.GetOrders(ctx)
	if err != nil {
		return notLoggedIn(err)
	}

	if status != "" {
		want := statusName(status)
		filtered := orders[:0]
		for _, order := range orders {
			if strings.EqualFold(order.Status, want) {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	if len(orders) == 0 && o.format == formatTable {
		fmt.Fprintln(o.out, "No orders found.")
		return nil
	}

	return render(o.out, o.format, orders, func(w *tabwriter.Writer) {
		header(w, "ID", "CREATED AT", "STATUS", "TOAD", "DISHES")
		for _, order := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
				order.ID,
				formatTime(order.CreatedAt),
				order.Status,
				intOrDash(order.ToadID),
				order.ItemCount(),
			)
		}
	})
}

func formatTime(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func runOrdersShow(ctx context.Context, id int, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	order, err := o.client.GetOrder(ctx, id)
	if err != nil {
		return notLoggedIn(err)
	}

	return renderOrder(o, order)
}

func renderOrder(o *options, order *models.Order) error {
	return render(o.out, o.format, order, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Order:\t%d\n", order.ID)
		fmt.Fprintf(w, "Status:\t%s\n", order.Status)
		fmt.Fprintf(w, "Toad:\t%s\n", intOrDash(order.ToadID))
		fmt.Fprintf(w, "Created:\t%s\n", formatTime(order.CreatedAt))
		fmt.Fprintln(w)

		if len(order.Items) == 0 {
			fmt.Fprintln(w, "No dishes yet.")
			return
		}
		header(w, "ID", "DISH", "QUANTITY")
		for _, item := range order.Items {
			fmt.Fprintf(w, "%d\t%s\t%d\n", item.ID, item.DishName, item.Quantity)
		}
	})
}

func runOrdersCreate(ctx context.Context, items []int, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	for _, id := range items {
		if id <= 0 {
			return fmt.Errorf("invalid menu item id %d", id)
		}
	}

	order, err := o.client.CreateOrder(ctx)
	if err != nil {
		return notLoggedIn(err)
	}

	if len(items) > 0 {
		if err := o.client.AddToCart(ctx, order.ID, items); err != nil {
			return fmt.Errorf("order %d was created but adding dishes failed: %w", order.ID, notLoggedIn(err))
		}
	}

	if o.format != formatTable {
		return render(o.out, o.format, order, nil)
	}

	fmt.Fprintf(o.out, "✓ Created order %d", order.ID)
	if order.ToadID != nil {
		fmt.Fprintf(o.out, " (toad %d)", *order.ToadID)
	}
	fmt.Fprintln(o.out)
	if len(items) > 0 {
		fmt.Fprintf(o.out, "  Added %d dish(es)\n", len(items))
	}
	return nil
}

func runOrdersStatus(ctx context.Context, id, statusID int, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	order, err := o.client.UpdateOrderStatus(ctx, id, statusID)
	if err != nil {
		return notLoggedIn(err)
	}

	fmt.Fprintf(o.out, "✓ Order %d is now %s\n", id, orDash(order.Status))
	return nil
}

func runOrdersRemove(ctx context.Context, id int, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	if err := o.client.DeleteOrder(ctx, id); err != nil {
		return notLoggedIn(err)
	}

	fmt.Fprintf(o.out, "✓ Deleted order %d\n", id)
	return nil
}

// errAborted is returned when the user declines a confirmation
var errAborted = errors.New("aborted")

func runOrdersClear(ctx context.Context, yes bool, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	if !yes {
		confirmed, err := o.prompter.Confirm("Delete ALL orders")
		if errors.Is(err, ErrNotInteractive) {
			return fmt.Errorf("refusing to clear orders without confirmation (use --yes)")
		}
		if err != nil {
			return err
		}
		if !confirmed {
			return errAborted
		}
	}

	if err := o.client.ClearOrders(ctx); err != nil {
		return notLoggedIn(err)
	}

	fmt.Fprintln(o.out, "✓ All orders deleted")
	return nil
}
