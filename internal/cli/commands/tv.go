package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/frog-cafe/frogcafe/internal/models"
)

// DefaultWatchSchedule is how often tv --watch refreshes
const DefaultWatchSchedule = "@every 5s"

// NewTVCmd creates the tv command
func NewTVCmd() *cobra.Command {
	var watch bool
	var schedule string

	cmd := &cobra.Command{
		Use:     "tv",
		Aliases: []string{"display"},
		Short:   "Show the order display board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				return runTV(cmd.Context())
			}
			return runTVWatch(cmd.Context(), schedule)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep refreshing until interrupted")
	cmd.Flags().StringVar(&schedule, "schedule", DefaultWatchSchedule, "Refresh schedule for --watch (cron expression or @every <duration>)")

	return cmd
}

func runTV(ctx context.Context, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}
	return renderBoard(ctx, o)
}

func renderBoard(ctx context.Context, o *options) error {
	orders, err := o.client.GetDisplayData(ctx)
	if err != nil {
		return notLoggedIn(err)
	}
	if orders == nil {
		orders = []models.DisplayOrder{}
	}

	return render(o.out, o.format, orders, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Orders at %s\n\n", time.Now().Format("15:04:05"))
		if len(orders) == 0 {
			fmt.Fprintln(w, "No orders in progress.")
			return
		}
		header(w, "ORDER", "TOAD", "STATUS")
		for _, order := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\n", order.ID, intOrDash(order.ToadID), order.Status)
		}
	})
}

// runTVWatch redraws the board on schedule until ctx is done. A failed
// refresh is reported and the next tick tries again.
func runTVWatch(ctx context.Context, schedule string, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	if err := renderBoard(ctx, o); err != nil {
		return err
	}

	c := cron.New()
	c.Schedule(sched, cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		if o.format == formatTable {
			fmt.Fprint(o.out, "\033[H\033[2J")
		}
		if err := renderBoard(ctx, o); err != nil {
			fmt.Fprintf(o.out, "refresh failed: %v\n", err)
		}
	}))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
