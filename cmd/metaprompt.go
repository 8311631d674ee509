package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mkret/promptsmith/internal/config"
)

var metapromptCmd = &cobra.Command{
	Use:   "metaprompt",
	Short: "Manage the suggester metaprompt file (~/.promptsmith/metaprompt.md)",
	Long: `Provides subcommands to show, edit, or add lines to the metaprompt.md
file used as the system prompt of the suggestion service.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		provider, err := GetProvider()
		if err != nil {
			log.Error().Err(err).Msg("Failed to get service provider in metaprompt command")
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		_, err = provider.Config.EnsureConfigDir()
		return err
	},
}

var metapromptShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the content of the metaprompt file",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Debug().Msg("Executing metaprompt show command")

		provider, err := GetProvider()
		if err != nil {
			log.Error().Err(err).Msg("Failed to get service provider")
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		metaprompt, err := provider.Config.LoadMetaprompt()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load metaprompt file")
			return fmt.Errorf("failed to read metaprompt file: %w", err)
		}
		if metaprompt == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Metaprompt file does not exist yet; the built-in metaprompt is used.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), metaprompt)
		return nil
	},
}

var metapromptEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the metaprompt file using $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Debug().Msg("Executing metaprompt edit command")

		provider, err := GetProvider()
		if err != nil {
			log.Error().Err(err).Msg("Failed to get service provider")
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		configDir, err := provider.Config.EnsureConfigDir()
		if err != nil {
			log.Error().Err(err).Msg("Failed to ensure config directory exists")
			return fmt.Errorf("failed to ensure config directory: %w", err)
		}
		metapromptPath := filepath.Join(configDir, config.DefaultMetapromptFileName)
		log.Debug().Str("path", metapromptPath).Msg("Metaprompt file path determined")

		editor := os.Getenv("EDITOR")
		if editor == "" {
			log.Debug().Msg("$EDITOR not set, using default editor for OS")
			if runtime.GOOS == "windows" {
				editor = "notepad"
			} else {
				editor = "vim"
			}
		}
		log.Debug().Str("editor", editor).Msg("Using editor")

		editorCmd := exec.Command(editor, metapromptPath)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr

		log.Debug().Msg("Launching editor...")
		if err := editorCmd.Run(); err != nil {
			log.Error().Err(err).Str("editor", editor).Msg("Editor command failed")
			return fmt.Errorf("failed to run editor '%s': %w", editor, err)
		}

		log.Info().Msg("Editor finished.")
		return nil
	},
}

var metapromptAddCmd = &cobra.Command{
	Use:   "add [line]",
	Short: "Add a new line to the metaprompt file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := args[0]
		log.Debug().Str("entry", entry).Msg("Executing metaprompt add command")

		provider, err := GetProvider()
		if err != nil {
			log.Error().Err(err).Msg("Failed to get service provider")
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		configDir, err := provider.Config.EnsureConfigDir()
		if err != nil {
			log.Error().Err(err).Msg("Failed to ensure config directory exists")
			return fmt.Errorf("failed to ensure config directory: %w", err)
		}
		metapromptPath := filepath.Join(configDir, config.DefaultMetapromptFileName)

		f, err := os.OpenFile(metapromptPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Error().Err(err).Str("path", metapromptPath).Msg("Failed to open metaprompt file for appending")
			return fmt.Errorf("failed to open metaprompt file: %w", err)
		}
		defer f.Close()

		if _, err := f.WriteString(entry + "\n"); err != nil {
			log.Error().Err(err).Str("path", metapromptPath).Msg("Failed to write line to metaprompt file")
			return fmt.Errorf("failed to write to metaprompt file: %w", err)
		}

		log.Info().Str("path", metapromptPath).Msg("Line successfully added to metaprompt file")
		fmt.Fprintln(cmd.OutOrStdout(), "Line added to metaprompt file.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metapromptCmd)
	metapromptCmd.AddCommand(metapromptShowCmd)
	metapromptCmd.AddCommand(metapromptEditCmd)
	metapromptCmd.AddCommand(metapromptAddCmd)
}
