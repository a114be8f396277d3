package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// AlgorithmEd25519 is the only signature algorithm the wallet signs with.
const AlgorithmEd25519 = "ed25519"

// PublicKey is an algorithm-tagged public key, encoded as "<algorithm>:<hex>".
// The zero value is the blank placeholder left in unsigned transactions.
type PublicKey struct {
	Algorithm string
	Key       []byte
}

// IsZero returns true for the blank placeholder key.
func (pk PublicKey) IsZero() bool {
	return pk.Algorithm == "" && len(pk.Key) == 0
}

// String returns "<algorithm>:<hex>", or "" for the blank key.
func (pk PublicKey) String() string {
	if pk.IsZero() {
		return ""
	}
	return pk.Algorithm + ":" + hex.EncodeToString(pk.Key)
}

// MarshalJSON encodes the key in its string form.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.String())
}

// UnmarshalJSON decodes "<algorithm>:<hex>". An empty string decodes to the blank key.
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePublicKey(s)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// ParsePublicKey parses "<algorithm>:<hex>".
func ParsePublicKey(s string) (PublicKey, error) {
	if s == "" {
		return PublicKey{}, nil
	}
	algo, keyHex, ok := strings.Cut(s, ":")
	if !ok {
		return PublicKey{}, fmt.Errorf("public key %q lacks an algorithm prefix", s)
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key hex: %w", err)
	}
	return PublicKey{Algorithm: algo, Key: key}, nil
}

// HexBytes is a byte slice that encodes as hex in JSON (signatures, secrets, arbitrary data).
type HexBytes []byte

// MarshalJSON encodes the bytes as a hex string.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

// UnmarshalJSON decodes a hex string.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	*b = decoded
	return nil
}
