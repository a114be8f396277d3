package wallet

import (
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/crypto"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// KeyRing holds the keys derived from one wallet seed, indexed by address.
type KeyRing struct {
	seed  []byte
	keys  map[types.UnlockHash]*crypto.PrivateKey
	order []types.UnlockHash
}

// NewKeyRing derives the first count keys of seed.
func NewKeyRing(seed []byte, count uint64) (*KeyRing, error) {
	if len(seed) != crypto.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", crypto.SeedSize, len(seed))
	}
	kr := &KeyRing{
		seed: append([]byte(nil), seed...),
		keys: make(map[types.UnlockHash]*crypto.PrivateKey),
	}
	for i := uint64(0); i < count; i++ {
		if _, err := kr.Derive(i); err != nil {
			return nil, err
		}
	}
	return kr, nil
}

// Derive derives the key at index and adds it to the ring.
func (kr *KeyRing) Derive(index uint64) (*crypto.PrivateKey, error) {
	key, err := crypto.DeriveKey(kr.seed, index)
	if err != nil {
		return nil, fmt.Errorf("derive key %d: %w", index, err)
	}
	addr := key.UnlockHash()
	if existing, ok := kr.keys[addr]; ok {
		return existing, nil
	}
	kr.keys[addr] = key
	kr.order = append(kr.order, addr)
	return key, nil
}

// Key returns the key owning addr.
func (kr *KeyRing) Key(addr types.UnlockHash) (*crypto.PrivateKey, bool) {
	key, ok := kr.keys[addr]
	return key, ok
}

// KeyForPublicKey returns the key whose public half is pk.
func (kr *KeyRing) KeyForPublicKey(pk types.PublicKey) (*crypto.PrivateKey, bool) {
	return kr.Key(crypto.UnlockHashFromPublicKey(pk))
}

// Addresses returns the ring's addresses in derivation order.
func (kr *KeyRing) Addresses() []types.UnlockHash {
	out := make([]types.UnlockHash, len(kr.order))
	copy(out, kr.order)
	return out
}

// Zero wipes the seed and every derived key.
func (kr *KeyRing) Zero() {
	for i := range kr.seed {
		kr.seed[i] = 0
	}
	for _, key := range kr.keys {
		key.Zero()
	}
}
