package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/frog-cafe/frogcafe/internal/client"
	"github.com/frog-cafe/frogcafe/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Frog Cafe backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set FROGCAFE_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set FROGCAFE_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, username, password string, opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	// Environment variables are for CI and scripts
	if username == "" {
		username = os.Getenv("FROGCAFE_USERNAME")
	}
	if password == "" {
		password = os.Getenv("FROGCAFE_PASSWORD")
	}

	if username == "" {
		username, err = o.prompter.Username()
		if errors.Is(err, ErrNotInteractive) {
			return fmt.Errorf("username is required in non-interactive mode (use --username flag or FROGCAFE_USERNAME env var)")
		}
		if err != nil {
			return err
		}
	}
	if password == "" {
		password, err = o.prompter.Password()
		if errors.Is(err, ErrNotInteractive) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or FROGCAFE_PASSWORD env var)")
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(o.out, "Logging in to %s...\n", o.client.BaseURL())

	if _, err := o.client.Login(ctx, username, password); err != nil {
		if client.IsUnauthorized(err) {
			return fmt.Errorf("invalid username or password")
		}
		return err
	}

	fmt.Fprintln(o.out, "✓ Login successful!")
	fmt.Fprintf(o.out, "  User: %s\n", username)
	return nil
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout(opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	if err := o.gate.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	fmt.Fprintln(o.out, "✓ Logged out")
	return nil
}

// sessionStatus is the machine readable form of the status command
type sessionStatus struct {
	APIURL    string     `json:"api_url" yaml:"api_url"`
	State     string     `json:"state" yaml:"state"`
	Token     string     `json:"token,omitempty" yaml:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"whoami"},
		Short:   "Show whether a session is stored",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus(opts ...Option) error {
	o, err := resolve(opts...)
	if err != nil {
		return err
	}

	state, err := o.gate.State()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	status := sessionStatus{APIURL: o.client.BaseURL(), State: state.String()}
	if state == session.Authenticated {
		token, _ := o.gate.Store().Load()
		status.Token = session.Masked(token)
		if exp, ok := session.ExpiresAt(token); ok {
			status.ExpiresAt = &exp
		}
	}

	if format, _ := parseFormat(o.format); format != formatTable {
		return render(o.out, format, status, nil)
	}

	fmt.Fprintf(o.out, "API:     %s\n", status.APIURL)
	fmt.Fprintf(o.out, "Session: %s\n", status.State)
	if status.Token != "" {
		fmt.Fprintf(o.out, "Token:   %s\n", status.Token)
	}
	if status.ExpiresAt != nil {
		fmt.Fprintf(o.out, "Expires: %s\n", status.ExpiresAt.Local().Format(time.RFC1123))
	}
	if state == session.Unauthenticated {
		fmt.Fprintln(o.out, "\nRun 'frogcafe login' to sign in")
	}
	return nil
}
