package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// DefaultKeyringService is the keychain service name used by the CLI
	DefaultKeyringService = "frogcafe-cli"
)

// KeyringStore persists the token in the OS keychain/credential manager.
// Account separates tokens for different backends.
type KeyringStore struct {
	Service string
	Account string
}

// NewKeyringStore returns a keyring store keyed by the backend URL
func NewKeyringStore(apiURL string) *KeyringStore {
	return &KeyringStore{
		Service: DefaultKeyringService,
		Account: fmt.Sprintf("token-%s", apiURL),
	}
}

// Load retrieves the token from the OS keychain/credential manager
func (k *KeyringStore) Load() (string, error) {
	token, err := keyring.Get(k.Service, k.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// Save persists the token securely in the OS keychain/credential manager
func (k *KeyringStore) Save(token string) error {
	if err := keyring.Set(k.Service, k.Account, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear removes the token from the OS keychain/credential manager
func (k *KeyringStore) Clear() error {
	if err := keyring.Delete(k.Service, k.Account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
