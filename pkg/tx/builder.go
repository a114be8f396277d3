package tx

import "github.com/Klingon-tech/tfwallet/pkg/types"

// Builder constructs v1 transactions incrementally.
type Builder struct {
	tx *TransactionV1
}

// NewBuilder creates a new transaction builder.
func NewBuilder() *Builder {
	return &Builder{tx: &TransactionV1{}}
}

// AddInput adds an input spending parentID with a blank fulfillment.
func (b *Builder) AddInput(parentID types.OutputID) *Builder {
	b.tx.CoinInputs = append(b.tx.CoinInputs, Input{ParentID: parentID, Fulfillment: BlankFulfillment()})
	return b
}

// AddOutput adds an output of value guarded by condition.
func (b *Builder) AddOutput(value types.Currency, condition Condition) *Builder {
	b.tx.CoinOutputs = append(b.tx.CoinOutputs, Output{Value: value, Condition: condition})
	return b
}

// AddMinerFee adds a miner fee.
func (b *Builder) AddMinerFee(fee types.Currency) *Builder {
	b.tx.MinerFees = append(b.tx.MinerFees, fee)
	return b
}

// SetArbitraryData sets the free-form data field.
func (b *Builder) SetArbitraryData(data []byte) *Builder {
	b.tx.ArbitraryData = data
	return b
}

// Build returns the constructed transaction.
// Does NOT validate; call Validate separately.
func (b *Builder) Build() *TransactionV1 {
	return b.tx
}
