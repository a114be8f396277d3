package config

import "time"

// Built-in provider IDs.
const (
	ProviderThreefold        = "threefold"
	ProviderThreefoldTestnet = "threefold_testnet"
)

// DefaultProviders returns the providers used when no providers.json exists.
func DefaultProviders() []Provider {
	return []Provider{
		{
			ProviderID:    ProviderThreefold,
			Network:       Mainnet,
			Algorithm:     AlgorithmEd25519,
			ExplorerURLs:  []string{"https://explorer.threefoldtoken.com", "https://explorer2.threefoldtoken.com"},
			AddressLength: 78,
			Symbol:        "TFT",
			Name:          "ThreeFold Token",
			Precision:     9,
			MinerFee:      "100000000",
		},
		{
			ProviderID:    ProviderThreefoldTestnet,
			Network:       Testnet,
			Algorithm:     AlgorithmEd25519,
			ExplorerURLs:  []string{"https://explorer.testnet.threefoldtoken.com", "https://explorer2.testnet.threefoldtoken.com"},
			AddressLength: 78,
			Symbol:        "TFT",
			Name:          "ThreeFold Token (testnet)",
			Precision:     9,
			MinerFee:      "100000000",
		},
	}
}

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network:   Mainnet,
		DataDir:   DefaultDataDir(),
		Provider:  ProviderThreefold,
		Providers: DefaultProviders(),
		Explorer: ExplorerConfig{
			Timeout:       5 * time.Second,
			MaxAttempts:   5,
			ResetInterval: 5 * time.Minute,
		},
		Wallet: WalletConfig{
			Name: "default",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.Provider = ProviderThreefoldTestnet
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
