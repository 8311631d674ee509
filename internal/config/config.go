// Package config owns the ~/.promptsmith directory: the main config file,
// the prompt preset library, the suggester metaprompt and the LLM API key.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigFileName is the standard name for the main configuration file.
	DefaultConfigFileName = "config.yaml"
	// DefaultPresetsFileName is the standard name for the prompt preset library.
	DefaultPresetsFileName = "presets.yaml"
	// DefaultMetapromptFileName is the standard name for the suggester metaprompt file.
	DefaultMetapromptFileName = "metaprompt.md"
	// DefaultConfigDirName is the standard name for the configuration directory within the user's home directory.
	DefaultConfigDirName = ".promptsmith"
	// ConfigDirEnvVar is the environment variable used to override the default configuration directory path.
	ConfigDirEnvVar = "PROMPTSMITH_CONFIG_DIR"
)

// EnsureConfigDir checks if the configuration directory exists, creating it
// if necessary. It prioritizes baseDir if provided. If baseDir is empty, it
// checks the PROMPTSMITH_CONFIG_DIR environment variable, then defaults to
// ~/.promptsmith. Returns the validated directory path.
func EnsureConfigDir(baseDir string) (string, error) {
	var configDirPath string

	if baseDir != "" {
		configDirPath = baseDir
		log.Debug().Str("path", configDirPath).Msg("Using provided base directory path")
	} else if envDir := os.Getenv(ConfigDirEnvVar); envDir != "" {
		configDirPath = envDir
		log.Debug().Str("path", configDirPath).Str("env_var", ConfigDirEnvVar).Msg("Using config directory path from environment variable")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDirPath = filepath.Join(homeDir, DefaultConfigDirName)
		log.Debug().Str("path", configDirPath).Msg("Using default config directory path")
	}

	info, err := os.Stat(configDirPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", configDirPath).Msg("Config directory does not exist, attempting to create")
			if mkdirErr := os.MkdirAll(configDirPath, 0700); mkdirErr != nil {
				log.Error().Err(mkdirErr).Str("path", configDirPath).Msg("Failed to create config directory")
				return "", fmt.Errorf("%w: %w", ErrConfigDirCreate, mkdirErr)
			}
			log.Info().Str("path", configDirPath).Msg("Successfully created config directory")
			return configDirPath, nil
		}
		log.Error().Err(err).Str("path", configDirPath).Msg("Failed to stat config directory path")
		return "", fmt.Errorf("%w: %w", ErrConfigDirStat, err)
	}

	if !info.IsDir() {
		log.Error().Str("path", configDirPath).Msg("Config path exists but is not a directory")
		return "", ErrConfigDirNotDir
	}

	log.Debug().Str("path", configDirPath).Msg("Config directory exists and is a directory")
	return configDirPath, nil
}

// OpenAIConfig holds configuration specific to the OpenAI suggestion provider.
type OpenAIConfig struct {
	ModelName string `mapstructure:"model_name"`
	BaseURL   string `mapstructure:"base_url"` // Optional custom base URL
	// APIKey is handled separately via keyring/env var (GetAPIKey)
}

// SuggestionsConfig selects and configures the optional suggestion service.
type SuggestionsConfig struct {
	Provider string       `mapstructure:"provider"` // "openai" or "none"
	OpenAI   OpenAIConfig `mapstructure:"openai"`
}

// AppConfig holds the overall application configuration.
type AppConfig struct {
	DefaultTier string            `mapstructure:"default_tier"` // minimal, guided or full
	OutputDir   string            `mapstructure:"output_dir"`   // where snapshots are saved; "" means current directory
	Suggestions SuggestionsConfig `mapstructure:"suggestions"`
}

// LoadConfig loads the application configuration from the config file
// (e.g. ~/.promptsmith/config.yaml or baseDir/config.yaml), environment
// variables (PROMPTSMITH_*), and defaults. A missing config file is not an
// error; defaults apply.
func LoadConfig(baseDir string) (*AppConfig, error) {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure config directory: %w", err)
	}

	v := viper.New()

	v.SetDefault("default_tier", "guided")
	v.SetDefault("output_dir", "")
	v.SetDefault("suggestions.provider", "openai")
	v.SetDefault("suggestions.openai.model_name", "gpt-4o")
	v.SetDefault("suggestions.openai.base_url", "")
	// No default for API key - use GetAPIKey() for retrieval

	configPath := filepath.Join(configDir, DefaultConfigFileName)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	log.Debug().Str("path", configPath).Msg("Attempting to load config file")

	v.SetEnvPrefix("PROMPTSMITH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Str("path", configPath).Msg("Config file not found. Using defaults and environment variables.")
		} else {
			log.Error().Err(err).Str("path", configPath).Msg("Failed to read config file")
			return nil, fmt.Errorf("%w: %w", ErrConfigRead, err)
		}
	} else {
		log.Debug().Str("path", configPath).Msg("Read config file successfully")
	}

	var cfg AppConfig
	err = v.Unmarshal(&cfg)
	if err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("Failed to unmarshal config file")
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	log.Debug().Str("path", configPath).Interface("config", cfg).Msg("Unmarshalled config successfully")

	return &cfg, nil
}

// Preset is a prebuilt prompt template shown by the examples command. Presets
// use the Guided tier's field set.
type Preset struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Role         string   `yaml:"role"`
	Task         string   `yaml:"task"`
	Constraints  []string `yaml:"constraints"`
	Context      string   `yaml:"context,omitempty"`
	OutputFormat string   `yaml:"output_format,omitempty"`
}

// PresetsConfig holds the preset library.
type PresetsConfig struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets loads the preset library from the presets file. When the file
// does not exist the built-in presets are returned. An existing but
// unreadable or unparseable file is an error.
func LoadPresets(baseDir string) (PresetsConfig, error) {
	var cfg PresetsConfig

	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return cfg, fmt.Errorf("failed to ensure config directory for presets: %w", err)
	}

	presetsPath := filepath.Join(configDir, DefaultPresetsFileName)
	log.Debug().Str("path", presetsPath).Msg("Attempting to load presets file")

	fileBytes, err := os.ReadFile(presetsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", presetsPath).Msg("Presets file not found, using built-in presets")
			return PresetsConfig{Presets: BuiltinPresets()}, nil
		}
		log.Error().Err(err).Str("path", presetsPath).Msg("Failed to read presets file")
		return cfg, fmt.Errorf("%w: %w", ErrPresetsRead, err)
	}

	err = yaml.Unmarshal(fileBytes, &cfg)
	if err != nil {
		log.Error().Err(err).Str("path", presetsPath).Msg("Failed to parse presets file")
		return cfg, fmt.Errorf("%w: %w", ErrPresetsParse, err)
	}
	log.Debug().Str("path", presetsPath).Int("presets", len(cfg.Presets)).Msg("Parsed presets file successfully")

	if cfg.Presets == nil {
		cfg.Presets = []Preset{}
	}

	return cfg, nil
}

// BuiltinPresets returns the presets shipped with the binary, used when no
// presets file exists yet.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Name:         "code-reviewer",
			Description:  "Thorough review of a code change",
			Role:         "a senior software engineer with deep code review experience",
			Task:         "review the submitted code for bugs, security issues and maintainability problems",
			Constraints:  []string{"Be constructive", "Point to specific lines", "Prioritize findings by severity"},
			OutputFormat: "A markdown list of findings, each with severity, location and suggested fix",
		},
		{
			Name:        "copywriter",
			Description: "Marketing copy for a product launch",
			Role:        "a marketing copywriter specializing in concise product messaging",
			Task:        "write launch copy that highlights the product's three strongest benefits",
			Constraints: []string{"Keep sentences short", "Avoid superlatives", "Address the reader directly"},
		},
		{
			Name:         "data-analyst",
			Description:  "Exploratory analysis of a dataset",
			Role:         "a data analyst experienced in exploratory statistics",
			Task:         "analyze the provided dataset and summarize the trends that matter for the business",
			Constraints:  []string{"State assumptions explicitly", "Quantify uncertainty"},
			Context:      "The audience is non-technical stakeholders",
			OutputFormat: "A short report with one headline insight per section",
		},
	}
}

// LoadMetaprompt loads the suggester system prompt from the metaprompt file.
// It returns an empty string if the file doesn't exist, in which case the
// suggestion client falls back to its built-in metaprompt.
func LoadMetaprompt(baseDir string) (string, error) {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to ensure config directory for metaprompt: %w", err)
	}

	metapromptPath := filepath.Join(configDir, DefaultMetapromptFileName)
	log.Debug().Str("path", metapromptPath).Msg("Attempting to load metaprompt file")

	fileBytes, err := os.ReadFile(metapromptPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", metapromptPath).Msg("Metaprompt file not found, returning empty string")
			return "", nil
		}
		log.Error().Err(err).Str("path", metapromptPath).Msg("Failed to read metaprompt file")
		return "", fmt.Errorf("%w: %w", ErrMetapromptRead, err)
	}
	log.Debug().Str("path", metapromptPath).Int("bytes", len(fileBytes)).Msg("Read metaprompt file successfully")

	return string(fileBytes), nil
}

// --- Default File Creation ---

const defaultConfigYAML = `# User-specific configuration for the promptsmith CLI (psmith)
# Located at ~/.promptsmith/config.yaml

# Tier used by 'psmith build' when --tier is not given.
# One of: minimal, guided, full
default_tier: "guided"

# Directory where prompt snapshots are saved. Empty means the current
# working directory.
output_dir: ""

# Configuration for the optional suggestion service used in the guided and
# full tiers.
suggestions:
  # "openai" to enable suggestions, "none" to disable them.
  provider: "openai"

  # Settings specific to the OpenAI provider
  openai:
    # Name or identifier of the OpenAI model to use.
    model_name: "gpt-4o" # Example: gpt-4, gpt-4o, gpt-3.5-turbo
    # Optional: Specify a custom base URL for the OpenAI API (e.g., for proxies)
    # base_url: ""
`

const defaultPresetsYAML = `# ~/.promptsmith/presets.yaml
# Prebuilt prompt templates listed by 'psmith examples'.
# Each preset uses the guided tier's fields.
presets:
  - name: "code-reviewer"
    description: "Thorough review of a code change"
    role: "a senior software engineer with deep code review experience"
    task: "review the submitted code for bugs, security issues and maintainability problems"
    constraints:
      - "Be constructive"
      - "Point to specific lines"
      - "Prioritize findings by severity"
    output_format: "A markdown list of findings, each with severity, location and suggested fix"
  - name: "copywriter"
    description: "Marketing copy for a product launch"
    role: "a marketing copywriter specializing in concise product messaging"
    task: "write launch copy that highlights the product's three strongest benefits"
    constraints:
      - "Keep sentences short"
      - "Avoid superlatives"
      - "Address the reader directly"
  # Add more presets as needed
`

const defaultMetapromptMD = `You are an expert prompt engineering assistant specialized in creating high-quality prompts.

Your role is to:
1. Analyze user inputs and suggest improvements
2. Identify missing components that would enhance prompt quality
3. Provide specific, actionable suggestions
4. Ensure clarity and completeness

When given a prompt component, suggest improvements that:
- Make instructions clearer and more specific
- Add relevant constraints or guidelines
- Include helpful examples when appropriate
- Optimize for the intended use case

Keep suggestions concise and actionable. Focus on quality over quantity.
`

// writeFileIfNotExists checks if a file exists. If not, it writes the provided content.
func writeFileIfNotExists(filePath string, content string, perm os.FileMode) error {
	_, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", filePath).Msg("File does not exist, attempting to write default content")
			errWrite := os.WriteFile(filePath, []byte(content), perm)
			if errWrite != nil {
				log.Error().Err(errWrite).Str("path", filePath).Msg("Failed to write default file content")
				return fmt.Errorf("%w: %w", ErrDefaultFileWrite, errWrite)
			}
			log.Info().Str("path", filePath).Msg("Successfully wrote default file content")
			return nil
		}
		log.Error().Err(err).Str("path", filePath).Msg("Failed to stat file path")
		return fmt.Errorf("%w: %w", ErrDefaultFileStat, err)
	}
	log.Debug().Str("path", filePath).Msg("File already exists, no action needed")
	return nil
}

// CreateDefaultConfigFiles ensures the configuration directory exists and
// creates default configuration files (config.yaml, presets.yaml,
// metaprompt.md) within it if they do not already exist.
// If baseDir is empty, it uses the default ~/.promptsmith.
func CreateDefaultConfigFiles(baseDir string) error {
	configDir, err := EnsureConfigDir(baseDir)
	if err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	filesToCreate := []struct {
		name    string
		content string
		perm    os.FileMode
	}{
		{DefaultConfigFileName, defaultConfigYAML, 0600},
		{DefaultPresetsFileName, defaultPresetsYAML, 0644},
		{DefaultMetapromptFileName, defaultMetapromptMD, 0644},
	}

	for _, file := range filesToCreate {
		filePath := filepath.Join(configDir, file.name)
		log.Debug().Str("file", file.name).Msg("Ensuring default file")
		err := writeFileIfNotExists(filePath, file.content, file.perm)
		if err != nil {
			return err
		}
	}

	return nil
}

// --- API Key Handling ---

const (
	keyringServiceName = "promptsmith"
	keyringUserName    = "openai_api_key"
	// EnvAPIKeyName defines the environment variable name used to look up the LLM API key
	// as a fallback if it's not found in the OS keychain.
	EnvAPIKeyName = "PROMPTSMITH_LLM_API_KEY"
)

// ErrAPIKeyNotFound is returned when the API key cannot be found in any source.
var ErrAPIKeyNotFound = errors.New("OpenAI API key not found in OS keychain or environment variable " + EnvAPIKeyName)

// GetAPIKey retrieves the OpenAI API key.
// It first tries the OS keychain/keyring using the service "promptsmith" and
// user "openai_api_key". If not found there, it checks the environment
// variable PROMPTSMITH_LLM_API_KEY. If found in neither, it returns
// ErrAPIKeyNotFound.
func GetAPIKey() (string, error) {
	log.Debug().Str("service", keyringServiceName).Str("user", keyringUserName).Msg("Attempting to get API key from keychain")
	key, err := keyring.Get(keyringServiceName, keyringUserName)
	if err == nil {
		log.Debug().Msg("API key retrieved successfully (from keychain)")
		return key, nil
	}

	if !errors.Is(err, keyring.ErrNotFound) {
		log.Error().Err(err).Str("service", keyringServiceName).Str("user", keyringUserName).Msg("Error reading key from keychain")
		return "", fmt.Errorf("%w: %w", ErrKeyringGet, err)
	}

	log.Debug().Msgf("API key not found in keychain, checking environment variable %s", EnvAPIKeyName)
	key = os.Getenv(EnvAPIKeyName)
	if key != "" {
		log.Debug().Msg("API key retrieved successfully (from env var)")
		return key, nil
	}

	log.Debug().Str("env_var", EnvAPIKeyName).Msg("API key not found in environment variable either")
	return "", ErrAPIKeyNotFound
}

// SetAPIKey stores the OpenAI API key securely in the OS keychain/keyring.
func SetAPIKey(apiKey string) error {
	log.Debug().Str("service", keyringServiceName).Str("user", keyringUserName).Msg("Attempting to set API key in keychain")
	err := keyring.Set(keyringServiceName, keyringUserName, apiKey)
	if err != nil {
		log.Error().Err(err).Str("service", keyringServiceName).Str("user", keyringUserName).Msg("Failed to set API key in keychain")
		return fmt.Errorf("%w: %w", ErrKeyringSet, err)
	}
	log.Info().Str("service", keyringServiceName).Str("user", keyringUserName).Msg("API key stored successfully in keychain")
	return nil
}
