package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mkret/promptsmith/internal/config"
)

// configShowCmd represents the show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current promptsmith configuration",
	Long: `Displays the currently loaded configuration values
from config files and environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := GetProvider()
		if err != nil {
			return fmt.Errorf("failed to get service provider: %w", err)
		}
		return configShowRunE(provider.Config, provider.Keyring, cmd.OutOrStdout())
	},
}

// configShowRunE contains the core logic for the 'config show' command.
func configShowRunE(cfgProvider ConfigProvider, keyringClient KeyringClient, writer io.Writer) error {
	cfg, err := cfgProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	fmt.Fprintln(writer, "Current promptsmith configuration:")
	fmt.Fprintf(writer, "  Default Tier:   %s\n", cfg.DefaultTier)
	if cfg.OutputDir != "" {
		fmt.Fprintf(writer, "  Output Dir:     %s\n", cfg.OutputDir)
	} else {
		fmt.Fprintf(writer, "  Output Dir:     (current directory)\n")
	}
	fmt.Fprintf(writer, "  Suggestions:    %s\n", cfg.Suggestions.Provider)
	switch cfg.Suggestions.Provider {
	case "openai":
		fmt.Fprintf(writer, "    Model:        %s\n", cfg.Suggestions.OpenAI.ModelName)
		if cfg.Suggestions.OpenAI.BaseURL != "" {
			fmt.Fprintf(writer, "    Base URL:     %s\n", cfg.Suggestions.OpenAI.BaseURL)
		}
	case "none", "":
		fmt.Fprintf(writer, "    (suggestions disabled)\n")
	default:
		fmt.Fprintf(writer, "    (no specific settings shown for provider '%s')\n", cfg.Suggestions.Provider)
	}

	_, err = keyringClient.GetAPIKey(keyringServiceName, keyringUserName)
	apiKeyStatus := "Set (use 'psmith config set-key' to change)"
	if err != nil {
		if errors.Is(err, config.ErrAPIKeyNotFound) {
			apiKeyStatus = "Not Set (use 'psmith config set-key' to set)"
		} else {
			apiKeyStatus = fmt.Sprintf("Status Unknown (error checking keychain/env: %v)", err)
		}
	}
	fmt.Fprintf(writer, "  API Key:        %s\n", apiKeyStatus)

	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
