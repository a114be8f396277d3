package wallet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const (
	testMnemonic24 = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art"
	testMnemonic12 = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

func TestGenerateMnemonic(t *testing.T) {
	m1, err := GenerateMnemonic()
	if err != nil {
		t.Fatalf("GenerateMnemonic: %v", err)
	}
	m2, err := GenerateMnemonic()
	if err != nil {
		t.Fatalf("GenerateMnemonic: %v", err)
	}
	if got := len(strings.Fields(m1)); got != 24 {
		t.Errorf("word count = %d, want 24", got)
	}
	if !ValidateMnemonic(m1) {
		t.Error("generated mnemonic should validate")
	}
	if m1 == m2 {
		t.Error("two generated mnemonics should differ")
	}
}

func TestSeedFromMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		wantErr  bool
	}{
		{"24 words", testMnemonic24, false},
		{"12 words too short", testMnemonic12, true},
		{"bad checksum", strings.Replace(testMnemonic24, "art", "zoo", 1), true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := SeedFromMnemonic(tt.mnemonic)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMnemonic) {
					t.Errorf("err = %v, want ErrInvalidMnemonic", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SeedFromMnemonic: %v", err)
			}
			if len(seed) != SeedSize {
				t.Errorf("seed length = %d, want %d", len(seed), SeedSize)
			}
		})
	}
}

func TestSeedFromMnemonic_KnownEntropy(t *testing.T) {
	// "abandon" x23 + "art" is the all-zero 256-bit entropy vector.
	seed, err := SeedFromMnemonic(testMnemonic24)
	if err != nil {
		t.Fatalf("SeedFromMnemonic: %v", err)
	}
	if !bytes.Equal(seed, make([]byte, SeedSize)) {
		t.Errorf("seed = %x, want all zero", seed)
	}
}

func TestMnemonicFromSeed_RoundTrip(t *testing.T) {
	mnemonic, err := GenerateMnemonic()
	if err != nil {
		t.Fatalf("GenerateMnemonic: %v", err)
	}
	seed, err := SeedFromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("SeedFromMnemonic: %v", err)
	}
	got, err := MnemonicFromSeed(seed)
	if err != nil {
		t.Fatalf("MnemonicFromSeed: %v", err)
	}
	if got != mnemonic {
		t.Errorf("MnemonicFromSeed = %q, want %q", got, mnemonic)
	}
	if _, err := MnemonicFromSeed(seed[:16]); err == nil {
		t.Error("short seed should fail")
	}
}
