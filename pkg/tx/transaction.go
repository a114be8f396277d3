// Package tx defines the ledger's transaction formats, their wire codec and
// the pure rules the wallet applies to them.
package tx

import (
	"encoding/json"
	"errors"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Version identifies a transaction kind on the wire.
type Version uint8

const (
	VersionZero                     Version = 0
	VersionOne                      Version = 1
	VersionERC20Conversion          Version = 208
	VersionERC20CoinCreation        Version = 209
	VersionERC20AddressRegistration Version = 210
)

// Transaction errors.
var (
	ErrUnknownVersion     = errors.New("unknown transaction version")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrNotNormalized      = errors.New("legacy transaction must be normalized first")
)

// Transaction is the closed set of transaction kinds. Go has no exhaustive
// switch, so every type switch over Transaction ends in a default case that
// returns ErrUnknownVersion.
type Transaction interface {
	Version() Version
	// Inputs returns the coin inputs spent by the transaction.
	Inputs() []Input
	// Outputs returns the coin outputs created by the transaction, in the
	// order the explorer assigns output IDs to them.
	Outputs() []Output
	// Fees returns every amount burned by the transaction.
	Fees() []types.Currency
	isTransaction()
}

// Input spends a previously created output.
type Input struct {
	ParentID    types.OutputID
	Fulfillment Fulfillment
}

type inputJSON struct {
	ParentID    types.OutputID  `json:"parentid"`
	Fulfillment json.RawMessage `json:"fulfillment"`
}

// MarshalJSON implements json.Marshaler.
func (in Input) MarshalJSON() ([]byte, error) {
	f, err := MarshalFulfillment(in.Fulfillment)
	if err != nil {
		return nil, err
	}
	return json.Marshal(inputJSON{ParentID: in.ParentID, Fulfillment: f})
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *Input) UnmarshalJSON(data []byte) error {
	var j inputJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	f, err := UnmarshalFulfillment(j.Fulfillment)
	if err != nil {
		return err
	}
	in.ParentID = j.ParentID
	in.Fulfillment = f
	return nil
}

// Output is a value guarded by a condition. Its ID is assigned by the ledger
// and reported by the explorer next to the transaction.
type Output struct {
	Value     types.Currency
	Condition Condition
}

type outputJSON struct {
	Value     types.Currency  `json:"value"`
	Condition json.RawMessage `json:"condition"`
}

// MarshalJSON implements json.Marshaler.
func (o Output) MarshalJSON() ([]byte, error) {
	c, err := MarshalCondition(o.Condition)
	if err != nil {
		return nil, err
	}
	return json.Marshal(outputJSON{Value: o.Value, Condition: c})
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Output) UnmarshalJSON(data []byte) error {
	var j outputJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	c, err := UnmarshalCondition(j.Condition)
	if err != nil {
		return err
	}
	o.Value = j.Value
	o.Condition = c
	return nil
}

// TransactionV1 is the standard value transfer.
type TransactionV1 struct {
	CoinInputs        []Input          `json:"coininputs"`
	CoinOutputs       []Output         `json:"coinoutputs,omitempty"`
	BlockStakeInputs  []Input          `json:"blockstakeinputs,omitempty"`
	BlockStakeOutputs []Output         `json:"blockstakeoutputs,omitempty"`
	MinerFees         []types.Currency `json:"minerfees"`
	ArbitraryData     []byte           `json:"arbitrarydata,omitempty"`
}

func (*TransactionV1) Version() Version         { return VersionOne }
func (t *TransactionV1) Inputs() []Input        { return t.CoinInputs }
func (t *TransactionV1) Outputs() []Output      { return t.CoinOutputs }
func (t *TransactionV1) Fees() []types.Currency { return t.MinerFees }
func (*TransactionV1) isTransaction()           {}

// ERC20Conversion burns coins on this chain in exchange for ERC20 tokens sent
// to Address.
type ERC20Conversion struct {
	Address          types.ERC20Address `json:"address"`
	Value            types.Currency     `json:"value"`
	TransactionFee   types.Currency     `json:"txfee"`
	CoinInputs       []Input            `json:"coininputs"`
	RefundCoinOutput *Output            `json:"refundcoinoutput,omitempty"`
}

func (*ERC20Conversion) Version() Version    { return VersionERC20Conversion }
func (t *ERC20Conversion) Inputs() []Input   { return t.CoinInputs }
func (t *ERC20Conversion) Outputs() []Output { return refundOutputs(t.RefundCoinOutput) }
func (t *ERC20Conversion) Fees() []types.Currency {
	return []types.Currency{t.TransactionFee}
}
func (*ERC20Conversion) isTransaction() {}

// ERC20CoinCreation mints coins to Address after tokens were burned on the
// ERC20 side. The minted value has no output ID the wallet can enumerate.
type ERC20CoinCreation struct {
	Address            types.UnlockHash `json:"address"`
	Value              types.Currency   `json:"value"`
	TransactionFee     types.Currency   `json:"txfee"`
	ERC20BlockID       types.Hash       `json:"blockid"`
	ERC20TransactionID types.Hash       `json:"txid"`
}

func (*ERC20CoinCreation) Version() Version  { return VersionERC20CoinCreation }
func (*ERC20CoinCreation) Inputs() []Input   { return nil }
func (*ERC20CoinCreation) Outputs() []Output { return nil }
func (t *ERC20CoinCreation) Fees() []types.Currency {
	return []types.Currency{t.TransactionFee}
}
func (*ERC20CoinCreation) isTransaction() {}

// ERC20AddressRegistration links the address of PublicKey to an ERC20 address.
type ERC20AddressRegistration struct {
	PublicKey        types.PublicKey     `json:"pubkey"`
	TFTAddress       *types.UnlockHash   `json:"tftaddress,omitempty"`
	ERC20Address     *types.ERC20Address `json:"erc20address,omitempty"`
	Signature        types.HexBytes      `json:"signature"`
	RegistrationFee  types.Currency      `json:"regfee"`
	TransactionFee   types.Currency      `json:"txfee"`
	CoinInputs       []Input             `json:"coininputs"`
	RefundCoinOutput *Output             `json:"refundcoinoutput,omitempty"`
}

func (*ERC20AddressRegistration) Version() Version    { return VersionERC20AddressRegistration }
func (t *ERC20AddressRegistration) Inputs() []Input   { return t.CoinInputs }
func (t *ERC20AddressRegistration) Outputs() []Output { return refundOutputs(t.RefundCoinOutput) }
func (t *ERC20AddressRegistration) Fees() []types.Currency {
	return []types.Currency{t.RegistrationFee, t.TransactionFee}
}
func (*ERC20AddressRegistration) isTransaction() {}

func refundOutputs(o *Output) []Output {
	if o == nil {
		return nil
	}
	return []Output{*o}
}
