package wallet

import (
	"fmt"

	"github.com/Klingon-tech/tfwallet/internal/ledger"
	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// PaymentOutput describes one value the built transaction moves.
type PaymentOutput struct {
	Value types.Currency
	// To is zero for the value of an ERC20 conversion.
	To types.UnlockHash
	// ERC20Address is set for the value of an ERC20 conversion.
	ERC20Address *types.ERC20Address
	// Change marks the output returning the remainder to the sender.
	Change bool
}

// UnsignedTransaction is a built transaction with blank fulfillments,
// together with what a signer needs to know about it.
type UnsignedTransaction struct {
	Kind        Kind
	Transaction tx.Transaction
	// Inputs are the spent outputs, in coin input order.
	Inputs          []utxo.Output
	Outputs         []PaymentOutput
	Fee             types.Currency
	RegistrationFee types.Currency
}

// InputValue returns the total value of the spent outputs.
func (u *UnsignedTransaction) InputValue() types.Currency {
	return totalValue(u.Inputs)
}

// Change returns the value returned to the sender, zero if none.
func (u *UnsignedTransaction) Change() types.Currency {
	for _, o := range u.Outputs {
		if o.Change {
			return o.Value
		}
	}
	return types.ZeroCurrency
}

// Builder turns payment requests into unsigned transactions.
type Builder struct {
	selector CoinSelector
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCoinSelector replaces the default largest-first selection.
func WithCoinSelector(s CoinSelector) BuilderOption {
	return func(b *Builder) { b.selector = s }
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{selector: SelectLargestFirst}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildSignatureData builds req with the default Builder.
func BuildSignatureData(req Request, history []tx.ExplorerTransaction, pending []tx.Transaction, clock types.Clock) (*UnsignedTransaction, error) {
	return NewBuilder().Build(req, history, pending, clock)
}

// Build selects unreserved outputs of req.From covering the request and
// shapes them into the transaction kind req asks for. The destination
// comes first, then the change back to req.From if any.
func (b *Builder) Build(req Request, history []tx.ExplorerTransaction, pending []tx.Transaction, clock types.Clock) (*UnsignedTransaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owned := utxo.ComputeOwnedOutputs(history, req.From, clock)
	available := ledger.ExcludeReserved(owned.Available, ledger.ReservedOutputs(pending))

	required := req.RequiredFunds()
	sel, err := b.selector(available.Outputs(), required)
	if err != nil {
		return nil, fmt.Errorf("select inputs for %s: %w", required, err)
	}

	inputs := make([]tx.Input, len(sel.Inputs))
	for i, o := range sel.Inputs {
		inputs[i] = tx.Input{ParentID: o.ID, Fulfillment: tx.BlankFulfillment()}
	}
	var change *tx.Output
	if !sel.Change.IsZero() {
		change = &tx.Output{Value: sel.Change, Condition: tx.NewUnlockHashCondition(req.From)}
	}

	u := &UnsignedTransaction{
		Kind:            req.Kind,
		Inputs:          sel.Inputs,
		Fee:             req.Fee,
		RegistrationFee: req.RegistrationFee(),
	}
	switch req.Kind {
	case KindTransfer:
		tb := tx.NewBuilder()
		for _, o := range sel.Inputs {
			tb.AddInput(o.ID)
		}
		tb.AddOutput(req.Amount, tx.NewUnlockHashCondition(req.To))
		if change != nil {
			tb.AddOutput(change.Value, change.Condition)
		}
		u.Transaction = tb.AddMinerFee(req.Fee).SetArbitraryData(req.ArbitraryData).Build()
		u.Outputs = append(u.Outputs, PaymentOutput{Value: req.Amount, To: req.To})
	case KindERC20Conversion:
		erc20 := req.ERC20Address
		u.Transaction = &tx.ERC20Conversion{
			Address:          erc20,
			Value:            req.Amount,
			TransactionFee:   req.Fee,
			CoinInputs:       inputs,
			RefundCoinOutput: change,
		}
		u.Outputs = append(u.Outputs, PaymentOutput{Value: req.Amount, ERC20Address: &erc20})
	case KindERC20AddressRegistration:
		u.Transaction = &tx.ERC20AddressRegistration{
			PublicKey:        req.PublicKey,
			RegistrationFee:  u.RegistrationFee,
			TransactionFee:   req.Fee,
			CoinInputs:       inputs,
			RefundCoinOutput: change,
		}
	}
	if change != nil {
		u.Outputs = append(u.Outputs, PaymentOutput{Value: sel.Change, To: req.From, Change: true})
	}

	if err := tx.Validate(u.Transaction); err != nil {
		return nil, err
	}
	if err := tx.CheckConservation(u.Transaction, sel.Total); err != nil {
		return nil, err
	}
	return u, nil
}
