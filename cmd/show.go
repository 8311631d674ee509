package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mkret/promptsmith/internal/prompt"
	"github.com/mkret/promptsmith/internal/snapshot"
)

// showRunE contains the core logic for the show command: reload a saved
// snapshot and re-display the rendered prompt and its scores.
func showRunE(path string, asJSON bool, out io.Writer) error {
	sn, err := snapshot.Load(path)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(sn, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format snapshot as JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Tier:         %s\n", sn.Tier)
	fmt.Fprintf(out, "Created:      %s\n", sn.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Clarity:      %.1f/10\n", sn.Validation.ClarityScore)
	fmt.Fprintf(out, "Completeness: %.0f%%\n", sn.Validation.CompletenessScore*100)
	fmt.Fprintf(out, "Overall:      %.0f%%\n", sn.Validation.OverallScore*100)

	// Snapshots are re-rendered from their components rather than echoing the
	// stored text, proving the record round-trips.
	store, err := sn.Store()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n--- Prompt ---")
	fmt.Fprintln(out, prompt.Render(store))
	return nil
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <snapshot-file>",
	Short: "Display a previously saved prompt snapshot",
	Long: `Loads a snapshot file written by 'psmith build' and re-displays the
prompt and its validation scores.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return showRunE(args[0], asJSON, cmd.OutOrStdout())
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "Print the raw snapshot record as JSON")
	rootCmd.AddCommand(showCmd)
}
