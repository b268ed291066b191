package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewToadsCmd creates the toads command group
func NewToadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toads",
		Aliases: []string{"toad"},
		Short:   "Show and hand out pickup toads",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List toads and whether they are taken",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToadsList(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <id> taken|free",
		Short:     "Mark a toad as taken or free",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"taken", "free"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("toad", args[0])
			if err != nil {
				return err
			}
			taken, err := parseToadState(args[1])
			if err != nil {
				return err
			}
			return runToadsSet(cmd.Context(), id, taken)
		},
	})

	return cmd
}

func parseToadState(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "taken", "true", "busy":
		return true, nil
	case "free", "false":
		return false, nil
	}
	return false, fmt.Errorf("unknown toad state %q (use taken or free)", arg)
}

func runToadsList(ctx context.Context, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	toads, err := o.client.GetToads(ctx)
	if err != nil {
		return notLoggedIn(err)
	}
	sort.SliceStable(toads, func(i, j int) bool { return toads[i].ID < toads[j].ID })

	return render(o.out, o.format, toads, func(w *tabwriter.Writer) {
		header(w, "TOAD", "STATE")
		free := 0
		for _, toad := range toads {
			state := "free"
			if toad.IsTaken {
				state = "taken"
			} else {
				free++
			}
			fmt.Fprintf(w, "%d\t%s\n", toad.ID, state)
		}
		fmt.Fprintf(w, "\n%d of %d free\n", free, len(toads))
	})
}

func runToadsSet(ctx context.Context, id int, taken bool, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	toad, err := o.client.UpdateToadStatus(ctx, id, taken)
	if err != nil {
		return notLoggedIn(err)
	}

	state := "free"
	if toad.IsTaken {
		state = "taken"
	}
	fmt.Fprintf(o.out, "✓ Toad %d is %s\n", id, state)
	return nil
}
