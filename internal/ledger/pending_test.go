package ledger

import (
	"reflect"
	"testing"

	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

func TestTouches(t *testing.T) {
	allKnown := known(owned(1, 100))
	tests := []struct {
		name string
		txn  tx.Transaction
		want bool
	}{
		{"pays me", transfer(nil, pay(me, 1)), true},
		{"pays me locked", transfer(nil, lockedPay(me, 1, 1<<40)), true},
		{"pays other", transfer(nil, pay(other, 1)), false},
		{"spends my output", transfer([]types.OutputID{id(1)}, pay(other, 99)), true},
		{"coin creation for me", &tx.ERC20CoinCreation{Address: me}, true},
		{"coin creation for other", &tx.ERC20CoinCreation{Address: other}, false},
		{"conversion spending mine", &tx.ERC20Conversion{CoinInputs: []tx.Input{{ParentID: id(1)}}}, true},
	}
	for _, tt := range tests {
		if got := Touches(tt.txn, me, allKnown); got != tt.want {
			t.Errorf("%s: Touches = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProjectPending(t *testing.T) {
	allKnown := known(owned(1, 100))
	pool := []tx.Transaction{
		transfer([]types.OutputID{id(7)}, pay(other, 5)),
		transfer([]types.OutputID{id(1)}, pay(other, 60), pay(me, 39)),
		transfer([]types.OutputID{id(8)}, pay(me, 12)),
	}
	pending, err := ProjectPending(pool, me, clock, allKnown)
	if err != nil {
		t.Fatalf("ProjectPending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d transactions, want 2", len(pending))
	}
	if got := pending[0].Amount.Total().Int64(); got != -61 {
		t.Errorf("pending[0] amount = %d, want -61", got)
	}
	if got := pending[1].Amount.Total().Int64(); got != 12 {
		t.Errorf("pending[1] amount = %d, want 12", got)
	}
	if pending[0].Fee.String() != "1" {
		t.Errorf("pending[0] fee = %s, want 1", pending[0].Fee)
	}

	again, err := ProjectPending(pool, me, clock, allKnown)
	if err != nil {
		t.Fatalf("ProjectPending again: %v", err)
	}
	if !reflect.DeepEqual(pending, again) {
		t.Error("projection is not idempotent")
	}
}

func TestReservedOutputs(t *testing.T) {
	pool := []tx.Transaction{
		transfer([]types.OutputID{id(1), id(2)}, pay(other, 5)),
		&tx.ERC20Conversion{CoinInputs: []tx.Input{{ParentID: id(3)}}},
		&tx.ERC20CoinCreation{Address: me},
	}
	reserved := ReservedOutputs(pool)
	if len(reserved) != 3 {
		t.Fatalf("reserved = %d outputs, want 3", len(reserved))
	}
	for _, b := range []byte{1, 2, 3} {
		if _, ok := reserved[id(b)]; !ok {
			t.Errorf("output %d not reserved", b)
		}
	}

	available := known(owned(4, 10), owned(2, 20), owned(5, 30))
	left := ExcludeReserved(available, reserved)
	want := []types.OutputID{id(4), id(5)}
	if got := left.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("ExcludeReserved = %v, want %v", got, want)
	}
	if available.Len() != 3 {
		t.Error("ExcludeReserved mutated its input")
	}
}
