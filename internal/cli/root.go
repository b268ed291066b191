package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frog-cafe/frogcafe/internal/cli/commands"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the frogcafe command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "frogcafe",
		Short: "Frog Cafe - order and kitchen terminal",
		Long: `Frog Cafe CLI - browse the menu, place orders and run the kitchen.

Sign in once with 'frogcafe login'; the session token is kept in the OS
keyring (or a private file with --token-store=file) and sent with every
request until it expires or the backend rejects it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	commands.AddGlobalFlags(rootCmd)

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "frogcafe version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewStatusCmd())
	rootCmd.AddCommand(commands.NewMenuCmd())
	rootCmd.AddCommand(commands.NewCartCmd())
	rootCmd.AddCommand(commands.NewOrdersCmd())
	rootCmd.AddCommand(commands.NewToadsCmd())
	rootCmd.AddCommand(commands.NewTVCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())

	return rootCmd
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
