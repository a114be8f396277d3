package ledger

import (
	"fmt"
	"sort"

	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// HistoryEntry is a history transaction as seen from one address.
type HistoryEntry struct {
	ID            types.TransactionID
	Height        types.BlockHeight
	Confirmations uint64
	Version       tx.Version
	Amount        Amount
	MinerFee      types.Currency
	Receiving     bool
	Unconfirmed   bool
}

// ClassifyHistory computes the entry of every transaction in history,
// unconfirmed first, then newest first. Transactions at the same height keep
// their input order.
func ClassifyHistory(history []tx.ExplorerTransaction, clock types.Clock, addr types.UnlockHash, allKnown *utxo.Set) ([]HistoryEntry, error) {
	entries := make([]HistoryEntry, 0, len(history))
	for _, et := range history {
		amount, err := AmountFor(et.RawTransaction, clock, addr, allKnown)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", et.ID, err)
		}
		var confirmations uint64
		if !et.Unconfirmed {
			confirmations = clock.Confirmations(et.Height)
		}
		entries = append(entries, HistoryEntry{
			ID:            et.ID,
			Height:        et.Height,
			Confirmations: confirmations,
			Version:       et.RawTransaction.Version(),
			Amount:        amount,
			MinerFee:      tx.TotalMinerFees(et.RawTransaction),
			Receiving:     amount.Receiving(),
			Unconfirmed:   et.Unconfirmed,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Unconfirmed != entries[j].Unconfirmed {
			return entries[i].Unconfirmed
		}
		return entries[i].Height > entries[j].Height
	})
	return entries, nil
}
