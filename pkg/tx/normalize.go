package tx

// Normalize maps a legacy v0 transaction onto the v1 shape. Every other kind
// is returned unchanged.
//
// Outputs become unlock hash conditions and inputs become single signature
// fulfillments built from the v0 unlocker. Block stake inputs and outputs are
// mapped the same way; miner fees and arbitrary data are kept as they are.
func Normalize(t Transaction) Transaction {
	v0, ok := t.(*TransactionV0)
	if !ok {
		return t
	}
	return &TransactionV1{
		CoinInputs:        normalizeLegacyInputs(v0.CoinInputs),
		CoinOutputs:       normalizeLegacyOutputs(v0.CoinOutputs),
		BlockStakeInputs:  normalizeLegacyInputs(v0.BlockStakeInputs),
		BlockStakeOutputs: normalizeLegacyOutputs(v0.BlockStakeOutputs),
		MinerFees:         v0.MinerFees,
		ArbitraryData:     v0.ArbitraryData,
	}
}

// NormalizeExplorerTransaction normalizes the raw transaction of an explorer
// record. Identity, height, parent and output IDs are preserved.
func NormalizeExplorerTransaction(et ExplorerTransaction) ExplorerTransaction {
	et.RawTransaction = Normalize(et.RawTransaction)
	return et
}
