package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set during build time (e.g., via ldflags)
// Default is "dev" for local development.
var version = "dev"

var (
	logLevel string
	// Log is the globally configured zerolog logger instance used throughout the cmd package.
	// It's initialized in rootCmd's PersistentPreRunE based on the --log-level flag.
	Log zerolog.Logger
)

// configureLogger sets up the global zerolog logger based on the logLevel flag.
func configureLogger(levelStr string) error {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		log.Warn().Msgf("Invalid log level '%s', defaulting to 'info'", levelStr)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	Log = log.Logger.With().Timestamp().Logger()

	Log.Debug().Msgf("Log level set to '%s'", level.String())
	return nil
}

// persistentPreRunLogic contains the logic for PersistentPreRunE.
func persistentPreRunLogic(cmd *cobra.Command, args []string) error {
	showVersion, _ := cmd.Flags().GetBool("version")
	if showVersion {
		fmt.Println(version)
		os.Exit(0) // Exit after showing version, Cobra does not handle this automatically in PersistentPreRunE
	}
	return configureLogger(logLevel)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "psmith",
	Short: "Promptsmith CLI - interactive agent prompt builder",
	Long: `Promptsmith (psmith) is a CLI wizard that walks you through the
components of an agent prompt (role, task, constraints, and richer tiers up
to reasoning patterns and success criteria), renders them into a single
instruction block, scores the result, and optionally saves a JSON snapshot.`,
	PersistentPreRunE: persistentPreRunLogic,
}

// Execute is the main entry point for the Cobra CLI application.
// It parses command-line arguments, executes the appropriate command,
// handles flag parsing, and manages error reporting. Called from main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		// Ensure logger is initialized even if PersistentPreRunE failed early
		if Log.GetLevel() == zerolog.Disabled {
			_ = configureLogger("info")
		}
		Log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

// NewRootCmd creates a new instance of the root command, configured for
// testing or embedding. It mirrors the setup of the package-level rootCmd.
func NewRootCmd() *cobra.Command {
	newCmd := &cobra.Command{
		Use:   "psmith",
		Short: "Promptsmith CLI - interactive agent prompt builder",
		Long: `Promptsmith (psmith) is a CLI wizard that walks you through the
components of an agent prompt (role, task, constraints, and richer tiers up
to reasoning patterns and success criteria), renders them into a single
instruction block, scores the result, and optionally saves a JSON snapshot.`,
		// Flags are re-bound to instance-local values so this command does not
		// fight over the package-level flag variables.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, _ := cmd.Flags().GetString("log-level")
			showVersion, _ := cmd.Flags().GetBool("version")

			if showVersion {
				fmt.Println(version)
				os.Exit(0)
			}
			return configureLogger(lvl)
		},
	}

	var instanceLogLevel string
	newCmd.PersistentFlags().StringVar(&instanceLogLevel, "log-level", "info", "Set log level (debug, info, warn, error, fatal, panic)")
	newCmd.PersistentFlags().Bool("version", false, "Show application version")

	// Subcommand variables are initialized in their files' init() functions.
	newCmd.AddCommand(buildCmd)
	newCmd.AddCommand(showCmd)
	newCmd.AddCommand(examplesCmd)
	newCmd.AddCommand(configCmd)
	newCmd.AddCommand(metapromptCmd)
	newCmd.AddCommand(completionCmd)

	return newCmd
}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(psmith completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ psmith completion bash > /etc/bash_completion.d/psmith
  # macOS:
  $ psmith completion bash > /usr/local/etc/bash_completion.d/psmith

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ psmith completion zsh > "${fpath[1]}/_psmith"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ psmith completion fish | source

  # To load completions for each session, execute once:
  $ psmith completion fish > ~/.config/fish/completions/psmith.fish

PowerShell:
  PS> psmith completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> psmith completion powershell > psmith.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			// Unreachable due to Args validation, kept for robustness.
			return fmt.Errorf("unsupported shell type %q", args[0])
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log level (debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Bool("version", false, "Show application version")

	// Child commands like buildCmd and configCmd are added via their own init() functions.
	rootCmd.AddCommand(completionCmd)
}
