// Package config handles wallet configuration.
//
// Settings are layered: built-in defaults, then the tfwallet.conf file of
// the data directory, then command-line flags. The list of payment
// providers comes from providers.json when present and is never reloaded
// while the wallet runs.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds the wallet's runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Provider is the ID of the payment provider in use.
	Provider      string `conf:"provider"`
	ProvidersFile string `conf:"providers.file"`
	Providers     []Provider

	// Explorer client
	Explorer ExplorerConfig

	// Wallet
	Wallet WalletConfig

	// Snapshot cache
	Cache CacheConfig

	// Metrics
	Metrics MetricsConfig

	// Logging
	Log LogConfig
}

// ExplorerConfig holds explorer client settings. Empty URLs means the
// provider's explorers.
type ExplorerConfig struct {
	URLs          []string      `conf:"explorer.urls"`
	Timeout       time.Duration `conf:"explorer.timeout"`
	MaxAttempts   int           `conf:"explorer.attempts"`
	ResetInterval time.Duration `conf:"explorer.reset"`
}

// WalletConfig holds wallet settings.
type WalletConfig struct {
	Name string `conf:"wallet.name"`
	// Fee is the miner fee in coins; empty means the provider's fee.
	Fee string `conf:"wallet.fee"`
}

// CacheConfig holds snapshot cache settings.
type CacheConfig struct {
	Enabled bool `conf:"cache.enabled"`
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	// TextFile, when set, receives the explorer metrics in the Prometheus
	// text format after every command.
	TextFile string `conf:"metrics.textfile"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.tfwallet
//	macOS:   ~/Library/Application Support/TFWallet
//	Windows: %APPDATA%\TFWallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tfwallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "TFWallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "TFWallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "TFWallet")
	default:
		return filepath.Join(home, ".tfwallet")
	}
}

// NetworkDataDir returns the network-specific data directory.
func (c *Config) NetworkDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeystoreDir returns the keystore directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.NetworkDataDir(), "keystore")
}

// CacheDir returns the snapshot cache database directory. Networks share
// it under separate key prefixes.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "tfwallet.conf")
}

// ProvidersPath returns the providers file path.
func (c *Config) ProvidersPath() string {
	if c.ProvidersFile != "" {
		return c.ProvidersFile
	}
	return filepath.Join(c.DataDir, "providers.json")
}

// ActiveProvider returns the provider selected by c.Provider.
func (c *Config) ActiveProvider() (Provider, error) {
	return ProviderByID(c.Providers, c.Provider)
}

// ExplorerURLs returns the configured explorers, falling back to those of
// the active provider.
func (c *Config) ExplorerURLs() ([]string, error) {
	if len(c.Explorer.URLs) > 0 {
		return c.Explorer.URLs, nil
	}
	p, err := c.ActiveProvider()
	if err != nil {
		return nil, err
	}
	return p.ExplorerURLs, nil
}
