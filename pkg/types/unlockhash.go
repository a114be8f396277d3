package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// UnlockType identifies what kind of condition an unlock hash commits to.
type UnlockType uint8

const (
	UnlockTypeNil            UnlockType = 0x00
	UnlockTypePubKey         UnlockType = 0x01
	UnlockTypeAtomicSwap     UnlockType = 0x02
	UnlockTypeMultiSignature UnlockType = 0x03
)

// String returns a human-readable name for the unlock type.
func (ut UnlockType) String() string {
	switch ut {
	case UnlockTypeNil:
		return "nil"
	case UnlockTypePubKey:
		return "pubkey"
	case UnlockTypeAtomicSwap:
		return "atomicswap"
	case UnlockTypeMultiSignature:
		return "multisig"
	default:
		return "unknown"
	}
}

// UnlockHashChecksumSize is the number of checksum bytes appended to the
// string form of an unlock hash.
const UnlockHashChecksumSize = 6

// UnlockHashStringLength is the length of a hex-encoded unlock hash:
// type(1) + hash(32) + checksum(6), two hex characters per byte.
const UnlockHashStringLength = 2 * (1 + HashSize + UnlockHashChecksumSize)

// UnlockHash is the address form of the ledger: a type byte followed by the
// hash of the condition that owns the value.
type UnlockHash struct {
	Type UnlockType
	Hash Hash
}

// NewUnlockHash builds an unlock hash of the given type.
func NewUnlockHash(t UnlockType, h Hash) UnlockHash {
	return UnlockHash{Type: t, Hash: h}
}

// IsZero returns true for the nil unlock hash.
func (uh UnlockHash) IsZero() bool {
	return uh.Type == UnlockTypeNil && uh.Hash.IsZero()
}

func (uh UnlockHash) checksum() []byte {
	var buf [1 + HashSize]byte
	buf[0] = byte(uh.Type)
	copy(buf[1:], uh.Hash[:])
	sum := blake2b.Sum256(buf[:])
	return sum[:UnlockHashChecksumSize]
}

// String returns the 78-character hex address form (type + hash + checksum).
func (uh UnlockHash) String() string {
	b := make([]byte, 0, 1+HashSize+UnlockHashChecksumSize)
	b = append(b, byte(uh.Type))
	b = append(b, uh.Hash[:]...)
	b = append(b, uh.checksum()...)
	return hex.EncodeToString(b)
}

// MarshalJSON encodes the unlock hash in its address form.
func (uh UnlockHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(uh.String())
}

// UnmarshalJSON decodes an address string. An empty string decodes to the nil hash.
func (uh *UnlockHash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*uh = UnlockHash{}
		return nil
	}
	parsed, err := ParseUnlockHash(s)
	if err != nil {
		return err
	}
	*uh = parsed
	return nil
}

// ParseUnlockHash parses and checksum-verifies an address string.
func ParseUnlockHash(s string) (UnlockHash, error) {
	if len(s) != UnlockHashStringLength {
		return UnlockHash{}, fmt.Errorf("unlock hash must be %d characters, got %d", UnlockHashStringLength, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return UnlockHash{}, fmt.Errorf("invalid unlock hash hex: %w", err)
	}
	var uh UnlockHash
	uh.Type = UnlockType(b[0])
	copy(uh.Hash[:], b[1:1+HashSize])
	if !bytes.Equal(uh.checksum(), b[1+HashSize:]) {
		return UnlockHash{}, fmt.Errorf("unlock hash %s has an invalid checksum", s)
	}
	return uh, nil
}
