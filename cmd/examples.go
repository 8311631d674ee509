package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mkret/promptsmith/internal/config"
	"github.com/mkret/promptsmith/internal/prompt"
	"github.com/mkret/promptsmith/internal/schema"
)

// presetStore builds a guided-tier component store from a preset definition.
func presetStore(p config.Preset) (*prompt.Store, error) {
	store := prompt.NewStore(schema.TierGuided)

	if err := store.SetText(schema.FieldRole, p.Role); err != nil {
		return nil, err
	}
	if err := store.SetText(schema.FieldTask, p.Task); err != nil {
		return nil, err
	}
	for _, c := range p.Constraints {
		if err := store.Append(schema.FieldConstraints, c); err != nil {
			return nil, err
		}
	}
	if err := store.SetText(schema.FieldContext, p.Context); err != nil {
		return nil, err
	}
	if err := store.SetText(schema.FieldOutputFormat, p.OutputFormat); err != nil {
		return nil, err
	}
	return store, nil
}

// examplesRunE contains the core logic for the examples command.
func examplesRunE(cp ConfigProvider, out io.Writer) error {
	presets, err := cp.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	if len(presets.Presets) == 0 {
		fmt.Fprintln(out, "No presets defined. Run 'psmith config init' to create the default library.")
		return nil
	}

	for i, p := range presets.Presets {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "=== %s ===\n", p.Name)
		if p.Description != "" {
			fmt.Fprintln(out, p.Description)
		}

		store, err := presetStore(p)
		if err != nil {
			return fmt.Errorf("preset %q is invalid: %w", p.Name, err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, prompt.Render(store))
	}

	return nil
}

// examplesCmd represents the examples command
var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the preset prompt templates",
	Long: `Renders each preset from ~/.promptsmith/presets.yaml through the prompt
renderer. When no presets file exists, the built-in presets are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := GetProvider()
		if err != nil {
			return fmt.Errorf("failed to initialize provider: %w", err)
		}
		return examplesRunE(provider.Config, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
