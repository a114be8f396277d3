package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// SeedSize is the length of the wallet seed the keys are derived from.
const SeedSize = 32

// PrivateKey wraps an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// DeriveKey derives the key pair at index from a wallet seed:
// ed25519 seed = BLAKE2b(seed(32) | index(8)).
func DeriveKey(seed []byte, index uint64) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	e := NewEncoder().EncodeFixed(seed).EncodeUint64(index)
	entropy := HashEncoded(e)
	return &PrivateKey{key: ed25519.NewKeyFromSeed(entropy[:])}, nil
}

// Sign produces an ed25519 signature over a 32-byte hash.
func (pk *PrivateKey) Sign(hash types.Hash) []byte {
	return ed25519.Sign(pk.key, hash[:])
}

// PublicKey returns the algorithm-tagged public key.
func (pk *PrivateKey) PublicKey() types.PublicKey {
	pub := pk.key.Public().(ed25519.PublicKey)
	return types.PublicKey{Algorithm: types.AlgorithmEd25519, Key: []byte(pub)}
}

// UnlockHash returns the single-signature address of this key.
func (pk *PrivateKey) UnlockHash() types.UnlockHash {
	return UnlockHashFromPublicKey(pk.PublicKey())
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	for i := range pk.key {
		pk.key[i] = 0
	}
}

// VerifySignature checks an ed25519 signature against a hash.
// Returns false for keys of any other algorithm.
func VerifySignature(hash types.Hash, signature []byte, pk types.PublicKey) bool {
	if pk.Algorithm != types.AlgorithmEd25519 || len(pk.Key) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk.Key), hash[:], signature)
}
