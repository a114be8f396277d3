package wallet

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Coin selection errors.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoOutputs         = errors.New("no spendable outputs")
)

// CoinSelection holds the result of coin selection.
type CoinSelection struct {
	Inputs []utxo.Output  // Selected outputs to spend.
	Total  types.Currency // Sum of selected input values.
	Change types.Currency // Change = Total - target.
}

// CoinSelector chooses outputs from available that together cover target.
type CoinSelector func(available []utxo.Output, target types.Currency) (*CoinSelection, error)

// SelectLargestFirst greedily spends the largest outputs until target is
// covered. Equal values are ordered by output ID so the selection is
// deterministic. It fails before selecting anything when the available
// total cannot cover target.
func SelectLargestFirst(available []utxo.Output, target types.Currency) (*CoinSelection, error) {
	if target.IsZero() {
		return nil, fmt.Errorf("target must be positive")
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientFunds, ErrNoOutputs)
	}
	have := totalValue(available)
	if have.Cmp(target) < 0 {
		return nil, fmt.Errorf("%w: have %s, need %s", ErrInsufficientFunds, have, target)
	}

	candidates := SortLargestFirst(available)
	sel := &CoinSelection{}
	for _, o := range candidates {
		if sel.Total.Cmp(target) >= 0 {
			break
		}
		sel.Inputs = append(sel.Inputs, o)
		sel.Total = sel.Total.Add(o.Value)
	}
	change, err := sel.Total.Sub(target)
	if err != nil {
		return nil, fmt.Errorf("%w: have %s, need %s", ErrInsufficientFunds, sel.Total, target)
	}
	sel.Change = change
	return sel, nil
}

// SortLargestFirst returns a copy of outputs ordered by value descending,
// then by output ID ascending.
func SortLargestFirst(outputs []utxo.Output) []utxo.Output {
	sorted := make([]utxo.Output, len(outputs))
	copy(sorted, outputs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Value.Cmp(sorted[j].Value); c != 0 {
			return c > 0
		}
		return bytes.Compare(sorted[i].ID[:], sorted[j].ID[:]) < 0
	})
	return sorted
}

func totalValue(outputs []utxo.Output) types.Currency {
	var total types.Currency
	for _, o := range outputs {
		total = total.Add(o.Value)
	}
	return total
}
