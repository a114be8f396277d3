// Package crypto provides the hashing and signing primitives of the ledger.
package crypto

import (
	"github.com/Klingon-tech/tfwallet/pkg/types"
	"golang.org/x/crypto/blake2b"
)

// Hash computes a BLAKE2b-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake2b.Sum256(data)
}

// HashEncoded hashes the bytes accumulated in an Encoder.
func HashEncoded(e *Encoder) types.Hash {
	return Hash(e.Bytes())
}

// UnlockHashFromPublicKey derives the single-signature address of a public key:
// BLAKE2b(specifier(16) | len(8) | key).
func UnlockHashFromPublicKey(pk types.PublicKey) types.UnlockHash {
	e := NewEncoder()
	e.EncodePublicKey(pk)
	return types.NewUnlockHash(types.UnlockTypePubKey, HashEncoded(e))
}
