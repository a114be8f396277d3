package utxo

import (
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// OwnedOutputs is the result of scanning an address's history.
type OwnedOutputs struct {
	// All holds every output the address owns, spent or not.
	All *Set
	// Available holds the outputs of All that no transaction in the
	// history spends.
	Available *Set
}

// ComputeOwnedOutputs collects the outputs of history owned by addr at the
// given clock, then drops those spent by any input anywhere in history.
//
// History does not need to be in chronological order: the spending
// transaction may be listed before the one that funds it. For ERC20
// conversions and address registrations only the refund output can belong
// to addr. ERC20 coin creations contribute no output; their value is
// accounted for by the balance calculator. Output IDs are paired with the
// outputs by index; outputs without an ID are skipped.
//
// Outputs of unconfirmed records are never owned: they cannot be spent
// until their transaction is in a block. Their inputs still count as spent.
func ComputeOwnedOutputs(history []tx.ExplorerTransaction, addr types.UnlockHash, clock types.Clock) OwnedOutputs {
	all := NewSet()
	for _, et := range history {
		if et.RawTransaction == nil || et.Unconfirmed {
			continue
		}
		for i, o := range et.RawTransaction.Outputs() {
			if i >= len(et.CoinOutputIDs) {
				break
			}
			if !tx.IsOwnedBy(o.Condition, addr, clock) {
				continue
			}
			all.Add(Output{
				ID:        et.CoinOutputIDs[i],
				Value:     o.Value,
				Condition: o.Condition,
				Height:    et.Height,
			})
		}
	}

	spent := SpentOutputIDs(history)
	available := all.Filter(func(o Output) bool {
		_, isSpent := spent[o.ID]
		return !isSpent
	})
	return OwnedOutputs{All: all, Available: available}
}

// SpentOutputIDs returns the parent IDs of every coin input in history.
func SpentOutputIDs(history []tx.ExplorerTransaction) map[types.OutputID]struct{} {
	spent := make(map[types.OutputID]struct{})
	for _, et := range history {
		if et.RawTransaction == nil {
			continue
		}
		for _, in := range et.RawTransaction.Inputs() {
			spent[in.ParentID] = struct{}{}
		}
	}
	return spent
}
