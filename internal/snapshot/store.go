// Package snapshot caches the last explorer view of each address so
// balances can be shown without reaching an explorer.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Klingon-tech/tfwallet/internal/ledger"
	"github.com/Klingon-tech/tfwallet/internal/storage"
	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// ErrNoSnapshot is returned by Load for an address never saved.
var ErrNoSnapshot = errors.New("no snapshot")

var prefixSnapshot = []byte("s/") // s/<addr string> -> snapshot JSON

// Snapshot is everything the wallet fetched for one address at one time.
type Snapshot struct {
	Address   types.UnlockHash
	Clock     types.Clock
	History   []tx.ExplorerTransaction
	Pool      []tx.Transaction
	FetchedAt time.Time
}

type snapshotJSON struct {
	Address   types.UnlockHash         `json:"address"`
	Clock     types.Clock              `json:"clock"`
	History   []tx.ExplorerTransaction `json:"history"`
	Pool      []tx.Envelope            `json:"pool"`
	FetchedAt time.Time                `json:"fetchedat"`
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	pool := make([]tx.Envelope, len(s.Pool))
	for i, t := range s.Pool {
		pool[i] = tx.Envelope{Transaction: t}
	}
	return json.Marshal(snapshotJSON{
		Address:   s.Address,
		Clock:     s.Clock,
		History:   s.History,
		Pool:      pool,
		FetchedAt: s.FetchedAt,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var j snapshotJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	pool := make([]tx.Transaction, len(j.Pool))
	for i, e := range j.Pool {
		pool[i] = e.Transaction
	}
	*s = Snapshot{
		Address:   j.Address,
		Clock:     j.Clock,
		History:   j.History,
		Pool:      pool,
		FetchedAt: j.FetchedAt,
	}
	return nil
}

// Store persists snapshots and the available outputs derived from them.
type Store struct {
	db      storage.DB
	outputs *utxo.Store
}

// NewStore creates a snapshot store over db. Use a storage.PrefixDB to keep
// networks apart.
func NewStore(db storage.DB) *Store {
	return &Store{db: db, outputs: utxo.NewStore(db)}
}

func snapshotKey(addr types.UnlockHash) []byte {
	return append(append([]byte{}, prefixSnapshot...), addr.String()...)
}

// Save stores s, replacing any earlier snapshot of the same address, and
// records the outputs spendable at s.Clock: available in the confirmed
// history and not spent by the pool. Both are committed in one batch.
func (st *Store) Save(s *Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}
	owned := utxo.ComputeOwnedOutputs(s.History, s.Address, s.Clock)
	spendable := ledger.ExcludeReserved(owned.Available, ledger.ReservedOutputs(s.Pool))

	batch := storage.NewBatch(st.db)
	if err := batch.Put(snapshotKey(s.Address), data); err != nil {
		return fmt.Errorf("snapshot put: %w", err)
	}
	if _, err := st.outputs.Stage(batch, s.Address, spendable); err != nil {
		return fmt.Errorf("snapshot outputs: %w", err)
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("snapshot commit: %w", err)
	}
	return nil
}

// Load returns the last snapshot saved for addr.
func (st *Store) Load(addr types.UnlockHash) (*Snapshot, error) {
	data, err := st.db.Get(snapshotKey(addr))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w for %s", ErrNoSnapshot, addr)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot get: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot unmarshal: %w", err)
	}
	return &s, nil
}

// Outputs returns the spendable outputs recorded by the last Save of addr,
// ordered by output ID.
func (st *Store) Outputs(addr types.UnlockHash) (*utxo.Set, error) {
	return st.outputs.Load(addr)
}

// Addresses lists every address with a saved snapshot.
func (st *Store) Addresses() ([]types.UnlockHash, error) {
	var addrs []types.UnlockHash
	err := st.db.ForEach(prefixSnapshot, func(key, _ []byte) error {
		addr, err := types.ParseUnlockHash(string(key[len(prefixSnapshot):]))
		if err != nil {
			return fmt.Errorf("snapshot key %q: %w", key, err)
		}
		addrs = append(addrs, addr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

// Clear removes every snapshot and output of the store.
func (st *Store) Clear() error {
	if d, ok := st.db.(interface{ DeleteAll() error }); ok {
		return d.DeleteAll()
	}
	var keys [][]byte
	err := st.db.ForEach(nil, func(key, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return err
	}
	batch := storage.NewBatch(st.db)
	for _, k := range keys {
		if err := batch.Delete(k); err != nil {
			return err
		}
	}
	return batch.Commit()
}
