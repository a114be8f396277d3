package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Flags holds the parsed global command-line flags.
type Flags struct {
	Help    bool
	Version bool

	// Core
	Network  string
	DataDir  string
	Config   string
	Provider string

	// Explorer
	Explorers string

	// Wallet
	Wallet string
	Fee    string

	// Cache
	NoCache bool

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Args holds the command and its arguments.
	Args []string

	SetLogJSON bool
}

// ParseFlags parses the global flags that precede the command.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("tfwallet", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")

	var testnet bool
	fs.StringVar(&f.Network, "network", "", "Network type (mainnet or testnet)")
	fs.BoolVar(&testnet, "testnet", false, "Use testnet (shorthand for --network=testnet)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")
	fs.StringVar(&f.Provider, "provider", "", "Payment provider ID")

	fs.StringVar(&f.Explorers, "explorers", "", "Explorer URLs (comma-separated)")

	fs.StringVar(&f.Wallet, "wallet", "", "Wallet name")
	fs.StringVar(&f.Fee, "fee", "", "Miner fee in coins")

	fs.BoolVar(&f.NoCache, "no-cache", false, "Do not read or write the snapshot cache")

	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			f.Help = true
			return f, nil
		}
		return nil, err
	}
	if testnet {
		f.Network = string(Testnet)
	}
	f.SetLogJSON = isFlagSet(fs, "log-json")
	f.Args = fs.Args()
	return f, nil
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	if f.Network != "" {
		cfg.Network = NetworkType(f.Network)
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.Provider != "" {
		cfg.Provider = f.Provider
	}
	if f.Explorers != "" {
		cfg.Explorer.URLs = parseStringList(f.Explorers)
	}
	if f.Wallet != "" {
		cfg.Wallet.Name = f.Wallet
	}
	if f.Fee != "" {
		cfg.Wallet.Fee = f.Fee
	}
	if f.NoCache {
		cfg.Cache.Enabled = false
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// Load builds the configuration with the following precedence:
// 1. Default values
// 2. Auto-create data dirs + default config (idempotent)
// 3. Config file
// 4. Providers file
// 5. Command-line flags
func Load(flags *Flags) (*Config, error) {
	network := Mainnet
	if strings.ToLower(flags.Network) == string(Testnet) {
		network = Testnet
	}
	cfg := Default(network)
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	if err := EnsureDataDirs(cfg); err != nil {
		return nil, fmt.Errorf("ensuring data dirs: %w", err)
	}

	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}
	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, fmt.Errorf("applying config file: %w", err)
	}
	// The network given on the command line wins over the file.
	if flags.Network != "" {
		cfg.Network = NetworkType(flags.Network)
	}
	if _, ok := fileValues["provider"]; !ok {
		cfg.Provider = Default(cfg.Network).Provider
	}

	pf, err := LoadProviders(cfg.ProvidersPath())
	if err != nil {
		return nil, fmt.Errorf("loading providers: %w", err)
	}
	if pf != nil {
		cfg.Providers = pf.Providers
		if _, ok := fileValues["provider"]; !ok && pf.DefaultProviderID != "" {
			if p, err := ProviderByID(pf.Providers, pf.DefaultProviderID); err == nil && p.Network == cfg.Network {
				cfg.Provider = p.ProviderID
			}
		}
	}

	ApplyFlags(cfg, flags)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// EnsureDataDirs creates the data directory structure and a default config
// file if they don't already exist. It is safe to call on every start.
func EnsureDataDirs(cfg *Config) error {
	dirs := []string{
		cfg.DataDir,
		cfg.NetworkDataDir(),
		cfg.KeystoreDir(),
		cfg.CacheDir(),
		cfg.LogsDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath, cfg.Network); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
	}
	return nil
}
