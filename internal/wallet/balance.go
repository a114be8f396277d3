package wallet

import (
	"fmt"
	"math/big"
	"time"

	"github.com/Klingon-tech/tfwallet/internal/ledger"
	"github.com/Klingon-tech/tfwallet/internal/snapshot"
	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Balance is the state of one address derived from a snapshot.
type Balance struct {
	Address types.UnlockHash
	Clock   types.Clock
	// Confirmed sums the confirmed history.
	Confirmed ledger.Amount
	// Unconfirmed sums the pending transactions that touch the address.
	Unconfirmed ledger.Amount
	// Spendable is the value of the unlocked outputs no pending
	// transaction spends.
	Spendable types.Currency
	Outputs   int
	Pending   []ledger.PendingTransaction
	FetchedAt time.Time
}

// Total returns the confirmed plus unconfirmed balance.
func (b *Balance) Total() *big.Int {
	return b.Confirmed.Add(b.Unconfirmed).Total()
}

// view is what every wallet query derives from a snapshot.
type view struct {
	owned   utxo.OwnedOutputs
	pending []ledger.PendingTransaction
}

func newView(s *snapshot.Snapshot) (*view, error) {
	owned := utxo.ComputeOwnedOutputs(s.History, s.Address, s.Clock)
	pending, err := ledger.ProjectPending(s.Pool, s.Address, s.Clock, owned.All)
	if err != nil {
		return nil, err
	}
	return &view{owned: owned, pending: pending}, nil
}

func (v *view) pendingTransactions() []tx.Transaction {
	txs := make([]tx.Transaction, len(v.pending))
	for i, p := range v.pending {
		txs[i] = p.Transaction
	}
	return txs
}

func (v *view) spendable() *utxo.Set {
	return ledger.ExcludeReserved(v.owned.Available, ledger.ReservedOutputs(v.pendingTransactions()))
}

// ComputeBalance derives the balance of s.Address from s alone.
func ComputeBalance(s *snapshot.Snapshot) (*Balance, error) {
	v, err := newView(s)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", s.Address, err)
	}
	confirmed, err := ledger.Balance(s.History, s.Clock, s.Address, v.owned.All)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", s.Address, err)
	}
	unconfirmed := ledger.NewAmount()
	for _, p := range v.pending {
		unconfirmed = unconfirmed.Add(p.Amount)
	}
	spendable := v.spendable()
	return &Balance{
		Address:     s.Address,
		Clock:       s.Clock,
		Confirmed:   confirmed,
		Unconfirmed: unconfirmed,
		Spendable:   spendable.Total(),
		Outputs:     spendable.Len(),
		Pending:     v.pending,
		FetchedAt:   s.FetchedAt,
	}, nil
}
