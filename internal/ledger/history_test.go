package ledger

import (
	"testing"

	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

func TestClassifyHistory(t *testing.T) {
	history := []tx.ExplorerTransaction{
		{ID: types.TransactionID{1}, Height: 10, RawTransaction: transfer(nil, pay(me, 100)), CoinOutputIDs: []types.OutputID{id(1)}},
		{ID: types.TransactionID{3}, Height: 95, RawTransaction: &tx.ERC20CoinCreation{Address: me, Value: cur(5), TransactionFee: cur(2)}},
		{ID: types.TransactionID{2}, Height: 50, RawTransaction: transfer([]types.OutputID{id(1)}, pay(other, 99)), CoinOutputIDs: []types.OutputID{id(2)}},
	}
	owned := utxo.ComputeOwnedOutputs(history, me, clock)

	entries, err := ClassifyHistory(history, clock, me, owned.All)
	if err != nil {
		t.Fatalf("ClassifyHistory: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	wantHeights := []types.BlockHeight{95, 50, 10}
	for i, h := range wantHeights {
		if entries[i].Height != h {
			t.Errorf("entries[%d].Height = %d, want %d", i, entries[i].Height, h)
		}
	}
	if entries[0].Confirmations != 6 {
		t.Errorf("confirmations = %d, want 6", entries[0].Confirmations)
	}
	if entries[0].MinerFee.String() != "2" || entries[0].Version != tx.VersionERC20CoinCreation {
		t.Errorf("coin creation entry = %+v", entries[0])
	}
	if entries[1].Receiving || entries[1].Amount.Total().Int64() != -100 {
		t.Errorf("send entry receiving=%v amount=%s", entries[1].Receiving, entries[1].Amount.Total())
	}
	if !entries[2].Receiving {
		t.Error("receive entry should be receiving")
	}
}

func TestClassifyHistory_UnconfirmedFirst(t *testing.T) {
	history := []tx.ExplorerTransaction{
		{ID: types.TransactionID{1}, Height: 10, RawTransaction: transfer(nil, pay(me, 100)), CoinOutputIDs: []types.OutputID{id(1)}},
		{ID: types.TransactionID{2}, Height: 90, RawTransaction: transfer(nil, pay(me, 5)), CoinOutputIDs: []types.OutputID{id(2)}},
		{ID: types.TransactionID{3}, RawTransaction: transfer([]types.OutputID{id(1)}, pay(other, 99)), Unconfirmed: true},
	}
	owned := utxo.ComputeOwnedOutputs(history, me, clock)

	entries, err := ClassifyHistory(history, clock, me, owned.All)
	if err != nil {
		t.Fatalf("ClassifyHistory: %v", err)
	}
	wantIDs := []types.TransactionID{{3}, {2}, {1}}
	if len(entries) != len(wantIDs) {
		t.Fatalf("entries = %d, want %d", len(entries), len(wantIDs))
	}
	for i, want := range wantIDs {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %s, want %s", i, entries[i].ID, want)
		}
	}
	if !entries[0].Unconfirmed || entries[0].Confirmations != 0 {
		t.Errorf("unconfirmed entry = %+v", entries[0])
	}
	if entries[0].Amount.Total().Int64() != -100 {
		t.Errorf("unconfirmed amount = %s, want -100", entries[0].Amount.Total())
	}
}
