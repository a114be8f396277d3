package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// AlgorithmEd25519 is the only key algorithm the wallet signs with.
const AlgorithmEd25519 = "ed25519"

// ErrUnknownProvider is returned for a provider ID not in the list.
var ErrUnknownProvider = errors.New("unknown provider")

// Provider describes a chain the wallet can hold coins on.
type Provider struct {
	ProviderID    string      `json:"providerId"`
	Network       NetworkType `json:"network"`
	Algorithm     string      `json:"algorithm"`
	ExplorerURLs  []string    `json:"explorerUrls"`
	AddressLength int         `json:"addressLength"`
	Symbol        string      `json:"symbol"`
	Name          string      `json:"name"`
	// Precision is the number of decimals of one coin.
	Precision int `json:"precision"`
	// MinerFee is the default miner fee in base units.
	MinerFee string `json:"minerFee"`
}

// DefaultMinerFee parses MinerFee.
func (p Provider) DefaultMinerFee() (types.Currency, error) {
	return types.ParseCurrency(p.MinerFee)
}

// ProvidersFile is the format of providers.json.
type ProvidersFile struct {
	Providers         []Provider `json:"providers"`
	DefaultProviderID string     `json:"defaultProviderId"`
}

// LoadProviders reads a providers file. A missing file yields nil.
func LoadProviders(path string) (*ProvidersFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pf ProvidersFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &pf, nil
}

// ProviderByID finds id in providers.
func ProviderByID(providers []Provider, id string) (Provider, error) {
	for _, p := range providers {
		if p.ProviderID == id {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
}

func validateProvider(p Provider) error {
	if p.ProviderID == "" {
		return fmt.Errorf("provider id is empty")
	}
	if p.Network != Mainnet && p.Network != Testnet {
		return fmt.Errorf("provider %s: network must be %q or %q", p.ProviderID, Mainnet, Testnet)
	}
	if p.Algorithm != AlgorithmEd25519 {
		return fmt.Errorf("provider %s: unsupported algorithm %q", p.ProviderID, p.Algorithm)
	}
	if len(p.ExplorerURLs) == 0 {
		return fmt.Errorf("provider %s: no explorer URLs", p.ProviderID)
	}
	if p.AddressLength != types.UnlockHashStringLength {
		return fmt.Errorf("provider %s: address length must be %d", p.ProviderID, types.UnlockHashStringLength)
	}
	if p.Precision < 0 || p.Precision > 18 {
		return fmt.Errorf("provider %s: precision must be in range [0, 18]", p.ProviderID)
	}
	fee, err := p.DefaultMinerFee()
	if err != nil {
		return fmt.Errorf("provider %s: miner fee: %w", p.ProviderID, err)
	}
	if fee.IsZero() {
		return fmt.Errorf("provider %s: miner fee must be positive", p.ProviderID)
	}
	return nil
}
