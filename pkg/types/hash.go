// Package types defines the primitive ledger types shared by the wallet engine.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashSize is the length of a hash in bytes.
const HashSize = 32

// Hash represents a 256-bit hash value.
type Hash [HashSize]byte

// OutputID globally identifies a coin output. It is assigned by the ledger
// when the creating transaction is accepted, so raw transactions never carry it.
type OutputID Hash

// TransactionID identifies a transaction.
type TransactionID Hash

// BlockID identifies a block.
type BlockID Hash

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hex-encoded hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string into a hash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = Hash{}
		return nil
	}
	parsed, err := HexToHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// HexToHash converts a hex string to a Hash.
// Returns an error if the string is not exactly 64 hex characters.
func HexToHash(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// HexToOutputID parses a hex-encoded output ID.
func HexToOutputID(s string) (OutputID, error) {
	h, err := HexToHash(s)
	return OutputID(h), err
}

// IsZero returns true if the output ID is all zeros.
func (id OutputID) IsZero() bool {
	return Hash(id).IsZero()
}

// String returns the hex-encoded output ID.
func (id OutputID) String() string {
	return Hash(id).String()
}

// MarshalJSON encodes the output ID as a hex string.
func (id OutputID) MarshalJSON() ([]byte, error) {
	return Hash(id).MarshalJSON()
}

// UnmarshalJSON decodes a hex string into an output ID.
func (id *OutputID) UnmarshalJSON(data []byte) error {
	return (*Hash)(id).UnmarshalJSON(data)
}

// IsZero returns true if the transaction ID is all zeros.
func (id TransactionID) IsZero() bool {
	return Hash(id).IsZero()
}

// String returns the hex-encoded transaction ID.
func (id TransactionID) String() string {
	return Hash(id).String()
}

// MarshalJSON encodes the transaction ID as a hex string.
func (id TransactionID) MarshalJSON() ([]byte, error) {
	return Hash(id).MarshalJSON()
}

// UnmarshalJSON decodes a hex string into a transaction ID.
func (id *TransactionID) UnmarshalJSON(data []byte) error {
	return (*Hash)(id).UnmarshalJSON(data)
}

// String returns the hex-encoded block ID.
func (id BlockID) String() string {
	return Hash(id).String()
}

// MarshalJSON encodes the block ID as a hex string.
func (id BlockID) MarshalJSON() ([]byte, error) {
	return Hash(id).MarshalJSON()
}

// UnmarshalJSON decodes a hex string into a block ID.
func (id *BlockID) UnmarshalJSON(data []byte) error {
	return (*Hash)(id).UnmarshalJSON(data)
}
