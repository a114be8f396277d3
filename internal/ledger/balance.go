// Package ledger derives balances and history views from explorer data.
// Every function is pure: results depend only on the arguments.
package ledger

import (
	"fmt"
	"math/big"

	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Amount is the signed change a transaction makes to an address's balance.
type Amount struct {
	Locked   *big.Int
	Unlocked *big.Int
}

// NewAmount returns a zero amount.
func NewAmount() Amount {
	return Amount{Locked: new(big.Int), Unlocked: new(big.Int)}
}

// Total returns Locked + Unlocked.
func (a Amount) Total() *big.Int {
	return new(big.Int).Add(a.Locked, a.Unlocked)
}

// Receiving reports whether the transaction adds value to the address overall.
func (a Amount) Receiving() bool {
	return a.Total().Sign() > 0
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{
		Locked:   new(big.Int).Add(a.Locked, b.Locked),
		Unlocked: new(big.Int).Add(a.Unlocked, b.Unlocked),
	}
}

// AmountFor computes the locked and unlocked delta t contributes to addr.
//
// Inputs spending an output in allKnown are the wallet spending its own
// money and are subtracted from the unlocked amount. Owned outputs are
// added as locked or unlocked depending on the clock. An ERC20 coin
// creation credits its whole value to the recipient.
func AmountFor(t tx.Transaction, clock types.Clock, addr types.UnlockHash, allKnown *utxo.Set) (Amount, error) {
	amount := NewAmount()
	switch t := t.(type) {
	case *tx.TransactionV1:
		subtractKnownInputs(amount, t.CoinInputs, allKnown)
		for _, o := range t.CoinOutputs {
			creditOutput(amount, o, addr, clock)
		}
	case *tx.ERC20Conversion:
		subtractKnownInputs(amount, t.CoinInputs, allKnown)
		if t.RefundCoinOutput != nil {
			creditOutput(amount, *t.RefundCoinOutput, addr, clock)
		}
	case *tx.ERC20AddressRegistration:
		subtractKnownInputs(amount, t.CoinInputs, allKnown)
		if t.RefundCoinOutput != nil {
			creditOutput(amount, *t.RefundCoinOutput, addr, clock)
		}
	case *tx.ERC20CoinCreation:
		if t.Address == addr {
			amount.Unlocked.Add(amount.Unlocked, t.Value.Big())
		}
	case *tx.TransactionV0:
		return Amount{}, tx.ErrNotNormalized
	default:
		return Amount{}, fmt.Errorf("amount of %T: %w", t, tx.ErrUnknownVersion)
	}
	return amount, nil
}

// Balance sums AmountFor over the confirmed transactions of history.
// Unconfirmed records are left to the pending projection of the pool.
func Balance(history []tx.ExplorerTransaction, clock types.Clock, addr types.UnlockHash, allKnown *utxo.Set) (Amount, error) {
	total := NewAmount()
	for _, et := range history {
		if et.Unconfirmed {
			continue
		}
		a, err := AmountFor(et.RawTransaction, clock, addr, allKnown)
		if err != nil {
			return Amount{}, fmt.Errorf("transaction %s: %w", et.ID, err)
		}
		total = total.Add(a)
	}
	return total, nil
}

func subtractKnownInputs(amount Amount, inputs []tx.Input, allKnown *utxo.Set) {
	for _, in := range inputs {
		if o, ok := allKnown.Get(in.ParentID); ok {
			amount.Unlocked.Sub(amount.Unlocked, o.Value.Big())
		}
	}
}

func creditOutput(amount Amount, o tx.Output, addr types.UnlockHash, clock types.Clock) {
	switch tx.OwnedBy(o.Condition, addr, clock) {
	case tx.OwnedUnlocked:
		amount.Unlocked.Add(amount.Unlocked, o.Value.Big())
	case tx.OwnedLocked:
		amount.Locked.Add(amount.Locked, o.Value.Big())
	}
}
