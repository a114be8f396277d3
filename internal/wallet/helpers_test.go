package wallet

import (
	"testing"

	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

var (
	dest      = types.NewUnlockHash(types.UnlockTypePubKey, types.Hash{0xde})
	testClock = types.Clock{Height: 100, Timestamp: 1_600_000_000}
)

func cur(v uint64) types.Currency {
	return types.NewCurrency64(v)
}

func outputID(i int) types.OutputID {
	return types.OutputID{0xa0, byte(i)}
}

func spendable(i int, value uint64, owner types.UnlockHash) utxo.Output {
	return utxo.Output{ID: outputID(i), Value: cur(value), Condition: tx.NewUnlockHashCondition(owner)}
}

// fund returns a history holding one confirmed output per value, all paid
// to owner, with IDs outputID(0), outputID(1), ...
func fund(owner types.UnlockHash, values ...uint64) []tx.ExplorerTransaction {
	history := make([]tx.ExplorerTransaction, len(values))
	for i, v := range values {
		raw := tx.NewBuilder().
			AddInput(types.OutputID{0xf0, byte(i)}).
			AddOutput(cur(v), tx.NewUnlockHashCondition(owner)).
			AddMinerFee(cur(1)).
			Build()
		history[i] = tx.ExplorerTransaction{
			ID:             types.TransactionID{0xb0, byte(i)},
			Height:         types.BlockHeight(10 + i),
			RawTransaction: raw,
			CoinOutputIDs:  []types.OutputID{outputID(i)},
		}
	}
	return history
}

// testKeys returns a ring over a fixed seed together with its first address.
func testKeys(t *testing.T) (*KeyRing, types.UnlockHash) {
	t.Helper()
	kr, err := NewKeyRing(testSeedBytes(t), 2)
	if err != nil {
		t.Fatalf("NewKeyRing: %v", err)
	}
	return kr, kr.Addresses()[0]
}
