package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// ERC20AddressSize is the length of an ERC20 address in bytes.
const ERC20AddressSize = 20

// ERC20Address is an address on the bridged ERC20 chain.
type ERC20Address [ERC20AddressSize]byte

// IsZero returns true if the address is all zeros.
func (a ERC20Address) IsZero() bool {
	return a == ERC20Address{}
}

// String returns the 0x-prefixed hex address.
func (a ERC20Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalJSON encodes the address as a 0x-prefixed hex string.
func (a ERC20Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a hex address, with or without 0x prefix.
func (a *ERC20Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = ERC20Address{}
		return nil
	}
	parsed, err := ParseERC20Address(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseERC20Address parses a 20-byte hex address, with or without 0x prefix.
func ParseERC20Address(s string) (ERC20Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return ERC20Address{}, fmt.Errorf("invalid erc20 address hex: %w", err)
	}
	if len(b) != ERC20AddressSize {
		return ERC20Address{}, fmt.Errorf("erc20 address must be %d bytes, got %d", ERC20AddressSize, len(b))
	}
	var a ERC20Address
	copy(a[:], b)
	return a, nil
}
