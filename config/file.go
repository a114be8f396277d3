package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFile loads wallet configuration from a .conf file.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key. Unknown keys are ignored.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "network":
		cfg.Network = NetworkType(value)
	case "datadir":
		cfg.DataDir = value
	case "provider":
		cfg.Provider = value
	case "providers.file":
		cfg.ProvidersFile = value

	// Explorer
	case "explorer.urls":
		cfg.Explorer.URLs = parseStringList(value)
	case "explorer.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.Explorer.Timeout = d
	case "explorer.attempts":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Explorer.MaxAttempts = n
	case "explorer.reset":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.Explorer.ResetInterval = d

	// Wallet
	case "wallet.name", "wallet":
		cfg.Wallet.Name = value
	case "wallet.fee":
		cfg.Wallet.Fee = value

	// Cache
	case "cache.enabled", "cache":
		cfg.Cache.Enabled = parseBool(value)

	// Metrics
	case "metrics.textfile":
		cfg.Metrics.TextFile = value

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// parseStringList parses a comma-separated list.
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// WriteDefaultConfig writes a default wallet configuration file.
func WriteDefaultConfig(path string, network NetworkType) error {
	content := `# TFWallet Configuration

# Network: mainnet or testnet
network = ` + string(network) + `

# Data directory (default: ~/.tfwallet)
# datadir = ~/.tfwallet

# Payment provider, from providers.json or the built-in list
# (default: the provider of the network)
# provider = ` + Default(network).Provider + `
# providers.file = ~/.tfwallet/providers.json

# ============================================================================
# Explorer
# ============================================================================

# Explorer URLs (comma-separated, default: the provider's explorers)
# explorer.urls = https://explorer.threefoldtoken.com,https://explorer2.threefoldtoken.com

# Per-attempt timeout, attempts per request, and how long a failed explorer
# is skipped
explorer.timeout = 5s
explorer.attempts = 5
explorer.reset = 5m

# ============================================================================
# Wallet
# ============================================================================

wallet.name = default
# Miner fee in coins (default: the provider's fee)
# wallet.fee = 0.1

# ============================================================================
# Cache
# ============================================================================

# Keep the last explorer snapshot for offline balances
cache.enabled = true

# ============================================================================
# Metrics
# ============================================================================

# Write explorer metrics in the Prometheus text format after each command
# metrics.textfile =

# ============================================================================
# Logging
# ============================================================================

log.level = warn
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0644)
}
