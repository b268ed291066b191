package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when input is needed but stdin is not a terminal
var ErrNotInteractive = errors.New("not running in a terminal")

// Prompter asks the user for input
type Prompter interface {
	Username() (string, error)
	Password() (string, error)
	Confirm(label string) (bool, error)
}

// terminalPrompter prompts on the controlling terminal
type terminalPrompter struct{}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (terminalPrompter) Username() (string, error) {
	if !interactive() {
		return "", ErrNotInteractive
	}

	prompt := promptui.Prompt{
		Label: "Username",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("username is required")
			}
			return nil
		},
	}
	username, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("username prompt cancelled: %w", err)
	}
	return strings.TrimSpace(username), nil
}

func (terminalPrompter) Password() (string, error) {
	if !interactive() {
		return "", ErrNotInteractive
	}

	fmt.Fprint(os.Stderr, "Password: ")
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}

func (terminalPrompter) Confirm(label string) (bool, error) {
	if !interactive() {
		return false, ErrNotInteractive
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}
