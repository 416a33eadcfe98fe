package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alkime/voicescribe/internal/keyring"
)

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey    SetKeyCmd    `cmd:"" help:"Store an API key in system keychain"`
	DeleteKey DeleteKeyCmd `cmd:"" name:"delete-key" help:"Remove an API key from system keychain"`
	ListKeys  ListKeysCmd  `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Service string `arg:"" enum:"openai,anthropic" help:"Service name (openai or anthropic)"`
	Secret  string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Service)

	return nil
}

// DeleteKeyCmd removes an API key from the system keychain.
type DeleteKeyCmd struct {
	Service string `arg:"" enum:"openai,anthropic" help:"Service name (openai or anthropic)"`
}

// Run executes the delete-key command.
func (c *DeleteKeyCmd) Run() error {
	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Delete(apiKey); err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}

	fmt.Printf("%s API key removed from keychain\n", c.Service)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	allSet := true

	for _, apiKey := range keyring.AllAPIKeys() {
		if keyring.IsSet(apiKey) {
			fmt.Printf("%s: configured\n", apiKey.DisplayName())
		} else {
			fmt.Printf("%s: not set\n", apiKey.DisplayName())
			allSet = false
		}
	}

	if !allSet {
		fmt.Println("\nRun 'voice config set-key <service> <key>' to configure.")
	}

	return nil
}
