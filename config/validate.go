package config

import (
	"fmt"
	"net/url"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Validate checks the configuration for obvious mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir is empty")
	}

	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no providers configured")
	}
	seen := make(map[string]struct{}, len(cfg.Providers))
	for _, p := range cfg.Providers {
		if err := validateProvider(p); err != nil {
			return err
		}
		if _, ok := seen[p.ProviderID]; ok {
			return fmt.Errorf("duplicate provider %q", p.ProviderID)
		}
		seen[p.ProviderID] = struct{}{}
	}
	p, err := cfg.ActiveProvider()
	if err != nil {
		return err
	}
	if p.Network != cfg.Network {
		return fmt.Errorf("provider %s is for %s, not %s", p.ProviderID, p.Network, cfg.Network)
	}

	for i, u := range cfg.Explorer.URLs {
		parsed, err := url.Parse(u)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("explorer.urls[%d] must be an http(s) URL", i)
		}
	}
	if cfg.Explorer.Timeout < 0 {
		return fmt.Errorf("explorer.timeout must not be negative")
	}
	if cfg.Explorer.MaxAttempts < 0 {
		return fmt.Errorf("explorer.attempts must not be negative")
	}
	if cfg.Explorer.ResetInterval < 0 {
		return fmt.Errorf("explorer.reset must not be negative")
	}

	if cfg.Wallet.Name == "" {
		return fmt.Errorf("wallet.name is empty")
	}
	if cfg.Wallet.Fee != "" {
		fee, err := types.ParseCoins(cfg.Wallet.Fee, p.Precision)
		if err != nil {
			return fmt.Errorf("wallet.fee: %w", err)
		}
		if fee.IsZero() {
			return fmt.Errorf("wallet.fee must be positive")
		}
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, error or disabled")
	}
	return nil
}

// MinerFee returns the configured miner fee in base units.
func (c *Config) MinerFee() (types.Currency, error) {
	p, err := c.ActiveProvider()
	if err != nil {
		return types.Currency{}, err
	}
	if c.Wallet.Fee == "" {
		return p.DefaultMinerFee()
	}
	return types.ParseCoins(c.Wallet.Fee, p.Precision)
}
