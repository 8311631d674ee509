package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkret/promptsmith/internal/config"
	"github.com/mkret/promptsmith/internal/metrics"
	"github.com/mkret/promptsmith/internal/prompt"
	"github.com/mkret/promptsmith/internal/schema"
	"github.com/mkret/promptsmith/internal/snapshot"
	"github.com/mkret/promptsmith/internal/suggest"
	"github.com/mkret/promptsmith/internal/validate"
	"github.com/mkret/promptsmith/internal/wizard"
)

// tierChoices is the option list shown when no --tier flag is given.
var tierChoices = []string{
	"Minimal (3 components, quick prototypes)",
	"Guided (6 components, most use cases)",
	"Full (11 components, complex requirements)",
}

// buildCmdRunner holds the dependencies for the build command.
type buildCmdRunner struct {
	configProvider ConfigProvider
	suggester      suggest.Suggester // may be nil
	asker          wizard.Asker
}

// newBuildCmdRunner creates a runner, fetching dependencies from the central Provider.
func newBuildCmdRunner(asker wizard.Asker) (*buildCmdRunner, error) {
	provider, err := GetProvider()
	if err != nil {
		Log.Error().Err(err).Msg("Failed to initialize dependency provider in newBuildCmdRunner")
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	return &buildCmdRunner{
		configProvider: provider.Config,
		suggester:      provider.Suggest,
		asker:          asker,
	}, nil
}

// NewBuildCmdRunnerForTest creates a runner with explicitly provided dependencies for testing.
func NewBuildCmdRunnerForTest(cp ConfigProvider, suggester suggest.Suggester, asker wizard.Asker) *buildCmdRunner {
	return &buildCmdRunner{
		configProvider: cp,
		suggester:      suggester,
		asker:          asker,
	}
}

// resolveTier determines the active tier: the --tier flag wins, then an
// interactive choice defaulting to the configured default tier.
func (r *buildCmdRunner) resolveTier(flagTier string, cfg *config.AppConfig) (schema.Tier, error) {
	if flagTier != "" {
		return schema.ParseTier(flagTier)
	}

	defaultTier, err := schema.ParseTier(cfg.DefaultTier)
	if err != nil {
		Log.Warn().Str("default_tier", cfg.DefaultTier).Msg("Invalid default_tier in config, falling back to guided")
		defaultTier = schema.TierGuided
	}

	r.asker.Show("Select the wizard tier:")
	choice, err := r.asker.AskChoice("Choose tier", tierChoices, int(defaultTier))
	if err != nil {
		return 0, err
	}
	return schema.Tier(choice), nil
}

// Run executes the wizard end to end: collection, summary, optional save,
// optional satisfaction rating.
func (r *buildCmdRunner) Run(cmd *cobra.Command, args []string) error {
	cfg, err := r.configProvider.LoadConfig()
	if err != nil {
		Log.Error().Err(err).Msg("Failed to load configuration")
		fmt.Fprintln(cmd.ErrOrStderr(), "Error loading configuration. You might need to run 'psmith config init'.")
		return err
	}

	flagTier, _ := cmd.Flags().GetString("tier")
	tier, err := r.resolveTier(flagTier, cfg)
	if err != nil {
		if errors.Is(err, wizard.ErrAborted) {
			r.asker.Show("Aborted.")
			return nil
		}
		return err
	}
	Log.Debug().Stringer("tier", tier).Msg("Tier selected")

	store := prompt.NewStore(tier)
	tracker := metrics.NewTracker(tier)
	driver := wizard.NewDriver(store, tracker, r.asker, r.suggester)

	if err := driver.Run(context.Background()); err != nil {
		if errors.Is(err, wizard.ErrAborted) {
			Log.Info().Msg("User aborted prompt collection.")
			r.asker.Show("\nAborted. Nothing was saved.")
			return nil
		}
		Log.Error().Err(err).Msg("Prompt collection failed")
		return err
	}
	tracker.Finalize()

	result := validate.Validate(store)
	tracker.ValidationScore = result.OverallScore()

	r.showSummary(store, tracker, result)

	var saveErr error
	if saveErr = r.maybeSave(cmd, cfg, store, tracker, result); saveErr != nil {
		if errors.Is(saveErr, wizard.ErrAborted) {
			return nil
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: could not save the snapshot: %v\n", saveErr)
		fmt.Fprintln(cmd.ErrOrStderr(), "The generated prompt above is still valid; copy it manually if needed.")
	}

	if err := r.maybeRate(tracker); err != nil {
		if errors.Is(err, wizard.ErrAborted) {
			return nil
		}
		return err
	}

	return saveErr
}

// showSummary prints the run metrics, the validation result and the rendered
// prompt.
func (r *buildCmdRunner) showSummary(store *prompt.Store, tracker *metrics.Tracker, result validate.Result) {
	show := r.asker.Show

	show("\n=== Prompt Generation Complete ===")
	show(fmt.Sprintf("Tier:                   %s", strings.ToUpper(store.Tier().String())))
	show(fmt.Sprintf("Time to create:         %.1f seconds", tracker.TimeToCreate().Seconds()))
	show(fmt.Sprintf("Components filled:      %d/%d", tracker.ComponentsFilled(), tracker.TotalComponents()))
	show(fmt.Sprintf("Estimated success rate: %.0f%%", tracker.SuccessRate()*100))
	if tracker.SuggestionsOffered > 0 {
		show(fmt.Sprintf("Suggestions accepted:   %d/%d", tracker.SuggestionsAccepted, tracker.SuggestionsOffered))
	}

	show("\n--- Validation ---")
	show(fmt.Sprintf("Clarity:      %.1f/10", result.Clarity))
	show(fmt.Sprintf("Completeness: %.0f%%", result.Completeness*100))
	show(fmt.Sprintf("Overall:      %.0f%%", result.OverallScore()*100))
	if result.IsValid {
		show("Status:       Valid")
	} else {
		show("Status:       Has Issues")
	}
	for _, issue := range result.Issues {
		show("  issue: " + issue)
	}
	for _, suggestion := range result.Suggestions {
		show("  suggestion: " + suggestion)
	}

	show("\n--- Generated Prompt ---")
	show(prompt.Render(store))
	show("------------------------")
}

// maybeSave asks for confirmation and writes the snapshot. The destination is
// the --output flag when given, otherwise a timestamped file name in the
// configured output directory.
func (r *buildCmdRunner) maybeSave(cmd *cobra.Command, cfg *config.AppConfig, store *prompt.Store, tracker *metrics.Tracker, result validate.Result) error {
	save, err := r.asker.Confirm("\nSave this prompt to file?", true)
	if err != nil {
		return err
	}
	if !save {
		return nil
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = filepath.Join(cfg.OutputDir, snapshot.DefaultFilename(store.Tier()))
	}

	sn := snapshot.New(store, tracker, result)
	if err := snapshot.Save(sn, path); err != nil {
		return err
	}
	r.asker.Show("Prompt saved to: " + path)
	return nil
}

// maybeRate collects the optional satisfaction rating (1-10) onto the metrics.
func (r *buildCmdRunner) maybeRate(tracker *metrics.Tracker) error {
	rate, err := r.asker.Confirm("Would you like to rate this experience?", false)
	if err != nil {
		return err
	}
	if !rate {
		return nil
	}

	answer, err := r.asker.Ask("Rate your satisfaction (1-10)", "8")
	if err != nil {
		return err
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil || rating < 1 || rating > 10 {
		r.asker.Show("Invalid rating, but thanks anyway!")
		return nil
	}

	tracker.Satisfaction = &rating
	Log.Debug().Float64("satisfaction", rating).Msg("Recorded satisfaction rating")
	r.asker.Show("Thanks for the feedback!")
	return nil
}

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the interactive prompt-building wizard",
	Long: `Walks through the components of an agent prompt for the chosen tier,
renders the final instruction block, scores it, and optionally saves a JSON
snapshot with the run metrics.

Tiers:
  minimal  role, task, constraints
  guided   minimal + context, examples, output format
  full     guided + reasoning pattern, success criteria, edge cases,
           performance requirements, custom instructions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asker := wizard.NewConsoleAsker(cmd.InOrStdin(), cmd.OutOrStdout())
		runner, err := newBuildCmdRunner(asker)
		if err != nil {
			return err
		}
		return runner.Run(cmd, args)
	},
}

func init() {
	buildCmd.Flags().StringP("tier", "t", "", "Wizard tier (minimal|guided|full); prompts interactively when omitted")
	buildCmd.Flags().StringP("output", "o", "", "Snapshot destination path (defaults to prompt_<tier>_<timestamp>.json in the configured output dir)")
	rootCmd.AddCommand(buildCmd)
}
