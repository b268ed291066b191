package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/frog-cafe/frogcafe/internal/cli/userconfig"
	"github.com/frog-cafe/frogcafe/internal/client"
)

// NewConfigCmd creates the config command group
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved CLI preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(os.Stdout)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> [value]",
		Short:     "Save a preference, omit the value to unset it",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: userconfig.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 2 {
				value = args[1]
			}
			return runConfigSet(os.Stdout, args[0], value)
		},
	})

	return cmd
}

func runConfigShow(out io.Writer) error {
	cfg, err := userconfig.Load()
	if err != nil {
		return err
	}

	path, _ := userconfig.GetConfigPath()
	fmt.Fprintf(out, "# %s\n", path)
	for _, key := range userconfig.Keys {
		value, _ := cfg.Get(key)
		fmt.Fprintf(out, "%s: %s\n", key, orDash(value))
	}
	return nil
}

func runConfigSet(out io.Writer, key, value string) error {
	if err := validateSetting(key, value); err != nil {
		return err
	}

	cfg, err := userconfig.Load()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := userconfig.Save(cfg); err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(out, "✓ Unset %s\n", key)
	} else {
		fmt.Fprintf(out, "✓ Set %s to %s\n", key, value)
	}
	return nil
}

func validateSetting(key, value string) error {
	if value == "" {
		return nil
	}
	switch key {
	case "redirects":
		_, err := client.ParseRedirectPolicy(value)
		return err
	case "token_store":
		if value != "keyring" && value != "file" {
			return fmt.Errorf("invalid token store %q (use keyring or file)", value)
		}
	case "output":
		_, err := parseFormat(value)
		return err
	}
	return nil
}
