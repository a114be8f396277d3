package utxo

import (
	"bytes"
	"sort"

	"github.com/Klingon-tech/tfwallet/pkg/crypto"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Commitment computes a digest over the outputs of a set. Each output is
// hashed, the hashes are sorted and hashed together, so the result does not
// depend on insertion order. Returns a zero hash for an empty set.
func Commitment(s *Set) types.Hash {
	outputs := s.Outputs()
	if len(outputs) == 0 {
		return types.Hash{}
	}
	hashes := make([]types.Hash, len(outputs))
	for i, o := range outputs {
		hashes[i] = hashOutput(o)
	}
	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
	})
	e := crypto.NewEncoder()
	e.EncodeUint64(uint64(len(hashes)))
	for _, h := range hashes {
		e.EncodeFixed(h[:])
	}
	return crypto.HashEncoded(e)
}

// hashOutput hashes id(32) | value | height(8).
func hashOutput(o Output) types.Hash {
	e := crypto.NewEncoder()
	e.EncodeFixed(o.ID[:])
	e.EncodeCurrency(o.Value)
	e.EncodeUint64(uint64(o.Height))
	return crypto.HashEncoded(e)
}
