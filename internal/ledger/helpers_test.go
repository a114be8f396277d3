package ledger

import (
	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

var (
	me    = types.NewUnlockHash(types.UnlockTypePubKey, types.Hash{0x01})
	other = types.NewUnlockHash(types.UnlockTypePubKey, types.Hash{0x02})
	clock = types.Clock{Height: 100, Timestamp: 1_600_000_000}
)

func id(b byte) types.OutputID {
	return types.OutputID{b}
}

func cur(v uint64) types.Currency {
	return types.NewCurrency64(v)
}

func pay(to types.UnlockHash, value uint64) tx.Output {
	return tx.Output{Value: cur(value), Condition: tx.NewUnlockHashCondition(to)}
}

func lockedPay(to types.UnlockHash, value, lockTime uint64) tx.Output {
	return tx.Output{
		Value:     cur(value),
		Condition: tx.TimeLockCondition{LockTime: lockTime, Condition: tx.NewUnlockHashCondition(to)},
	}
}

func transfer(inputs []types.OutputID, outputs ...tx.Output) *tx.TransactionV1 {
	b := tx.NewBuilder()
	for _, in := range inputs {
		b.AddInput(in)
	}
	for _, o := range outputs {
		b.AddOutput(o.Value, o.Condition)
	}
	return b.AddMinerFee(cur(1)).Build()
}

func known(outputs ...utxo.Output) *utxo.Set {
	return utxo.NewSet(outputs...)
}

func owned(b byte, value uint64) utxo.Output {
	return utxo.Output{ID: id(b), Value: cur(value), Condition: tx.NewUnlockHashCondition(me)}
}
