package cmd

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	keyring "github.com/zalando/go-keyring"

	"github.com/mkret/promptsmith/internal/config"
	"github.com/mkret/promptsmith/internal/suggest"
)

// --- Concrete Implementations of Shared Interfaces ---

// DefaultConfigProvider implements the ConfigProvider interface using the
// actual config package functions. Exported for potential use in tests.
type DefaultConfigProvider struct{}

func (p *DefaultConfigProvider) LoadConfig() (*config.AppConfig, error) {
	return config.LoadConfig("") // Empty string for default behavior
}

func (p *DefaultConfigProvider) LoadPresets() (*config.PresetsConfig, error) {
	presets, err := config.LoadPresets("")
	if err != nil {
		return nil, err
	}
	return &presets, nil
}

func (p *DefaultConfigProvider) LoadMetaprompt() (string, error) {
	return config.LoadMetaprompt("")
}

func (p *DefaultConfigProvider) GetAPIKey() (string, error) {
	return config.GetAPIKey()
}

// CreateDefaultConfigFiles calls the underlying config function to create
// default files. It ignores the configDir parameter as the underlying
// function determines the path.
func (p *DefaultConfigProvider) CreateDefaultConfigFiles(configDir string) error {
	return config.CreateDefaultConfigFiles("")
}

// EnsureConfigDir calls the underlying config function to ensure the config directory exists.
func (p *DefaultConfigProvider) EnsureConfigDir() (string, error) {
	return config.EnsureConfigDir("")
}

// --- Keyring Client Implementation ---

// defaultKeyringClient implements the KeyringClient interface using the actual keyring package.
type defaultKeyringClient struct{}

// Set calls the underlying keyring package's Set function.
func (k *defaultKeyringClient) Set(service, user, password string) error {
	return keyring.Set(service, user, password)
}

// GetAPIKey calls the underlying config function to retrieve the API key.
// The service and user parameters are currently unused by config.GetAPIKey
// but kept for interface compatibility.
func (k *defaultKeyringClient) GetAPIKey(service, user string) (string, error) {
	return config.GetAPIKey()
}

// --- Central Provider ---

// Provider serves as a central dependency injection container, aggregating
// the service interfaces (ConfigProvider, KeyringClient, Suggester) required
// by the application's commands. This simplifies passing dependencies down
// the call stack and facilitates mocking during testing.
type Provider struct {
	Config  ConfigProvider
	Keyring KeyringClient
	Suggest suggest.Suggester // nil when suggestions are unavailable
}

// GetProvider is the factory function responsible for initializing and
// returning a fully configured Provider instance. The suggestion client is
// optional: a missing API key or a provider of "none" leaves Provider.Suggest
// nil, which puts the wizard in reduced-capability mode rather than failing.
func GetProvider() (*Provider, error) {
	cfgProvider := &DefaultConfigProvider{}
	appCfg, err := cfgProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load application config: %w", err)
	}

	keyringClient := &defaultKeyringClient{}

	var suggester suggest.Suggester
	switch appCfg.Suggestions.Provider {
	case "openai":
		apiKey, keyErr := cfgProvider.GetAPIKey()
		if keyErr != nil {
			Log.Warn().Err(keyErr).Msg("LLM API key not available. Running without suggestions.")
			break
		}

		metaprompt, mpErr := cfgProvider.LoadMetaprompt()
		if mpErr != nil {
			Log.Warn().Err(mpErr).Msg("Failed to load metaprompt file. Using built-in metaprompt.")
			metaprompt = ""
		}

		openAIConfig := openai.DefaultConfig(apiKey)
		if appCfg.Suggestions.OpenAI.BaseURL != "" {
			openAIConfig.BaseURL = appCfg.Suggestions.OpenAI.BaseURL
			Log.Debug().Str("base_url", openAIConfig.BaseURL).Msg("Using custom OpenAI BaseURL")
		}
		openaiSdkClient := openai.NewClientWithConfig(openAIConfig)
		client, initErr := suggest.NewOpenAIClient(openaiSdkClient, appCfg.Suggestions.OpenAI.ModelName, metaprompt)
		if initErr != nil {
			Log.Warn().Err(initErr).Msg("Failed to initialize suggestion client. Running without suggestions.")
			break
		}
		Log.Debug().Str("provider", "openai").Msg("Suggestion client initialized")
		suggester = client
	case "none", "":
		Log.Debug().Msg("Suggestions disabled by configuration.")
	default:
		Log.Warn().Str("provider", appCfg.Suggestions.Provider).Msg("Unsupported suggestion provider specified in config. Running without suggestions.")
	}

	provider := &Provider{
		Config:  cfgProvider,
		Keyring: keyringClient,
		Suggest: suggester,
	}

	Log.Debug().Msg("Service Provider initialized successfully.")
	return provider, nil
}
