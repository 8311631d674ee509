package cmd

import (
	"github.com/mkret/promptsmith/internal/config"
)

// ConfigProvider defines an interface for components that load the various
// configuration aspects of promptsmith: the main config, the preset library,
// the suggester metaprompt and the API key. It also includes methods for
// managing the configuration directory and default files. This abstraction
// allows for easier testing by mocking configuration loading behavior.
type ConfigProvider interface {
	LoadConfig() (*config.AppConfig, error)
	LoadPresets() (*config.PresetsConfig, error)
	LoadMetaprompt() (string, error)
	GetAPIKey() (string, error)
	CreateDefaultConfigFiles(configDir string) error
	EnsureConfigDir() (string, error)
}

// KeyringClient defines an interface for components that interact with the
// operating system's secure credential store (keychain/keyring). It abstracts
// the operations of setting and retrieving the LLM API key.
type KeyringClient interface {
	Set(service, user, password string) error
	GetAPIKey(service, user string) (string, error)
}
