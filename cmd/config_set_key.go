package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Constants for keyring service and user name (should match config/config.go)
const (
	keyringServiceName = "promptsmith"
	keyringUserName    = "openai_api_key"
)

// setKeyCmd represents the set-key command
var setKeyCmd = &cobra.Command{
	Use:   "set-key [api-key]",
	Short: "Stores the suggestion service API key securely in the OS keychain",
	Long: `Stores the API key for the LLM suggestion service securely in the operating
system's keychain or keyring. This is the recommended way to configure the key.
The key will be associated with the service 'promptsmith' and user 'openai_api_key'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := GetProvider()
		if err != nil {
			return fmt.Errorf("failed to get service provider: %w", err)
		}
		return configSetKeyRun(provider.Keyring, cmd.OutOrStdout(), args[0])
	},
}

// configSetKeyRun contains the core logic for the set-key command.
// It accepts dependencies (keyring client, writer) for testability.
func configSetKeyRun(kc KeyringClient, writer io.Writer, apiKey string) error {
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}

	log.Info().Msgf("Attempting to store API key in keychain for service '%s'...", keyringServiceName)

	err := kc.Set(keyringServiceName, keyringUserName, apiKey)
	if err != nil {
		log.Error().Err(err).Msg("Failed to store API key in keychain")
		return fmt.Errorf("failed to store API key in keychain: %w", err)
	}

	log.Info().Msg("API key stored successfully in keychain.")
	fmt.Fprintln(writer, "API key stored successfully.")
	return nil
}

func init() {
	configCmd.AddCommand(setKeyCmd)
}
