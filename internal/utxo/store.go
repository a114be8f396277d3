package utxo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Klingon-tech/tfwallet/internal/storage"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Key prefixes for the output store.
var (
	prefixOutput     = []byte("o/") // o/<addr(33)><outputid(32)> -> Output JSON
	prefixCommitment = []byte("c/") // c/<addr(33)> -> commitment of the stored set
)

const addrKeySize = 1 + types.HashSize

// Store persists the available outputs of each address.
type Store struct {
	db storage.DB
}

// NewStore creates a new output store backed by the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

func addrPrefix(prefix []byte, addr types.UnlockHash) []byte {
	key := make([]byte, len(prefix)+addrKeySize)
	copy(key, prefix)
	key[len(prefix)] = byte(addr.Type)
	copy(key[len(prefix)+1:], addr.Hash[:])
	return key
}

// outputKey builds "o/" + addr(33) + outputid(32).
func outputKey(addr types.UnlockHash, id types.OutputID) []byte {
	key := addrPrefix(prefixOutput, addr)
	return append(key, id[:]...)
}

// Replace stores s as the output set of addr, removing any output no longer
// in it. It reports false without writing when the stored set already has
// the same commitment.
func (st *Store) Replace(addr types.UnlockHash, s *Set) (bool, error) {
	batch := storage.NewBatch(st.db)
	changed, err := st.Stage(batch, addr, s)
	if err != nil || !changed {
		return false, err
	}
	if err := batch.Commit(); err != nil {
		return false, fmt.Errorf("utxo commit: %w", err)
	}
	return true, nil
}

// Stage adds to batch the writes that make s the output set of addr. Nothing
// is written until the caller commits batch. It reports false and stages
// nothing when the stored set already has the same commitment.
func (st *Store) Stage(batch storage.Batch, addr types.UnlockHash, s *Set) (bool, error) {
	commitment := Commitment(s)
	stored, err := st.db.Get(addrPrefix(prefixCommitment, addr))
	switch {
	case err == nil && len(stored) == types.HashSize && types.Hash(stored) == commitment:
		return false, nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return false, fmt.Errorf("utxo commitment get: %w", err)
	}

	err = st.db.ForEach(addrPrefix(prefixOutput, addr), func(key, _ []byte) error {
		var id types.OutputID
		copy(id[:], key[len(prefixOutput)+addrKeySize:])
		if s.Contains(id) {
			return nil
		}
		return batch.Delete(key)
	})
	if err != nil {
		return false, fmt.Errorf("utxo scan: %w", err)
	}
	for _, o := range s.Outputs() {
		data, err := json.Marshal(o)
		if err != nil {
			return false, fmt.Errorf("utxo marshal: %w", err)
		}
		if err := batch.Put(outputKey(addr, o.ID), data); err != nil {
			return false, fmt.Errorf("utxo put: %w", err)
		}
	}
	if err := batch.Put(addrPrefix(prefixCommitment, addr), commitment[:]); err != nil {
		return false, fmt.Errorf("utxo commitment put: %w", err)
	}
	return true, nil
}

// Get retrieves one stored output of addr.
func (st *Store) Get(addr types.UnlockHash, id types.OutputID) (Output, error) {
	data, err := st.db.Get(outputKey(addr, id))
	if err != nil {
		return Output{}, fmt.Errorf("utxo get: %w", err)
	}
	var o Output
	if err := json.Unmarshal(data, &o); err != nil {
		return Output{}, fmt.Errorf("utxo unmarshal: %w", err)
	}
	return o, nil
}

// Load returns the stored output set of addr, ordered by output ID.
func (st *Store) Load(addr types.UnlockHash) (*Set, error) {
	s := NewSet()
	err := st.db.ForEach(addrPrefix(prefixOutput, addr), func(_, value []byte) error {
		var o Output
		if err := json.Unmarshal(value, &o); err != nil {
			return fmt.Errorf("utxo unmarshal: %w", err)
		}
		s.Add(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
