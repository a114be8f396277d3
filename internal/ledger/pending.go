package ledger

import (
	"fmt"

	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// PendingTransaction is an unconfirmed transaction that concerns the wallet.
type PendingTransaction struct {
	Transaction tx.Transaction
	Amount      Amount
	Fee         types.Currency
}

// Touches reports whether a pool transaction concerns addr: it pays to addr
// (maturity ignored), mints coins for addr, or spends an output the wallet
// knows.
func Touches(t tx.Transaction, addr types.UnlockHash, allKnown *utxo.Set) bool {
	if cc, ok := t.(*tx.ERC20CoinCreation); ok {
		return cc.Address == addr
	}
	for _, o := range t.Outputs() {
		if tx.OwnedByForSend(o.Condition, addr) {
			return true
		}
	}
	for _, in := range t.Inputs() {
		if allKnown.Contains(in.ParentID) {
			return true
		}
	}
	return false
}

// ProjectPending keeps the pool transactions that touch addr and computes
// their balance delta, preserving pool order.
func ProjectPending(pool []tx.Transaction, addr types.UnlockHash, clock types.Clock, allKnown *utxo.Set) ([]PendingTransaction, error) {
	var out []PendingTransaction
	for i, t := range pool {
		t = tx.Normalize(t)
		if !Touches(t, addr, allKnown) {
			continue
		}
		amount, err := AmountFor(t, clock, addr, allKnown)
		if err != nil {
			return nil, fmt.Errorf("pending transaction %d: %w", i, err)
		}
		out = append(out, PendingTransaction{
			Transaction: t,
			Amount:      amount,
			Fee:         tx.TotalFees(t),
		})
	}
	return out, nil
}

// ReservedOutputs returns the parent IDs of every coin input of the given
// pending transactions.
func ReservedOutputs(pending []tx.Transaction) map[types.OutputID]struct{} {
	reserved := make(map[types.OutputID]struct{})
	for _, t := range pending {
		for _, in := range t.Inputs() {
			reserved[in.ParentID] = struct{}{}
		}
	}
	return reserved
}

// ExcludeReserved returns the outputs of available not in reserved, in order.
func ExcludeReserved(available *utxo.Set, reserved map[types.OutputID]struct{}) *utxo.Set {
	return available.Filter(func(o utxo.Output) bool {
		_, ok := reserved[o.ID]
		return !ok
	})
}
