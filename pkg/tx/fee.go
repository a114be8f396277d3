package tx

import "github.com/Klingon-tech/tfwallet/pkg/types"

// AddressRegistrationFee is the fixed fee burned by an ERC20 address
// registration: 10 coins in base units.
const AddressRegistrationFee uint64 = 10_000_000_000

// DefaultMinerFee is 0.1 coin in base units.
const DefaultMinerFee uint64 = 100_000_000

// TotalFees returns the sum of every amount the transaction burns.
func TotalFees(t Transaction) types.Currency {
	total := types.ZeroCurrency
	for _, fee := range t.Fees() {
		total = total.Add(fee)
	}
	return total
}

// TotalMinerFees returns the sum of the miner fees only, leaving out the
// registration fee of an address registration.
func TotalMinerFees(t Transaction) types.Currency {
	switch t := t.(type) {
	case *TransactionV1:
		return sumCurrency(t.MinerFees)
	case *TransactionV0:
		return sumCurrency(t.MinerFees)
	case *ERC20Conversion:
		return t.TransactionFee
	case *ERC20CoinCreation:
		return t.TransactionFee
	case *ERC20AddressRegistration:
		return t.TransactionFee
	default:
		return types.ZeroCurrency
	}
}

// TotalOutputs returns the sum of the coin outputs created by t, plus the
// value converted by an ERC20 conversion.
func TotalOutputs(t Transaction) types.Currency {
	total := types.ZeroCurrency
	for _, o := range t.Outputs() {
		total = total.Add(o.Value)
	}
	if c, ok := t.(*ERC20Conversion); ok {
		total = total.Add(c.Value)
	}
	return total
}

func sumCurrency(cs []types.Currency) types.Currency {
	total := types.ZeroCurrency
	for _, c := range cs {
		total = total.Add(c)
	}
	return total
}
