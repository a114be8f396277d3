package wallet

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/crypto"
	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// SeedSize is the length of a wallet seed in bytes.
const SeedSize = crypto.SeedSize

// ErrInvalidMnemonic is returned for mnemonics that fail BIP-39 checks.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	return MnemonicFromSeed(entropy)
}

// ValidateMnemonic checks word list membership and the BIP-39 checksum.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SeedFromMnemonic returns the wallet seed a 24-word mnemonic encodes.
// The seed is the mnemonic's entropy; keys are derived from it by index.
func SeedFromMnemonic(mnemonic string) ([]byte, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("decode mnemonic: %w", err)
	}
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: encodes %d bytes, want %d", ErrInvalidMnemonic, len(seed), SeedSize)
	}
	return seed, nil
}

// MnemonicFromSeed is the inverse of SeedFromMnemonic.
func MnemonicFromSeed(seed []byte) (string, error) {
	if len(seed) != SeedSize {
		return "", fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	mnemonic, err := bip39.NewMnemonic(seed)
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return mnemonic, nil
}
