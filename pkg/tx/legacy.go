package tx

import (
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// TransactionV0 is the legacy transaction format. It only exists at the
// decode boundary: Normalize turns it into a TransactionV1.
type TransactionV0 struct {
	CoinInputs        []LegacyInput    `json:"coininputs"`
	CoinOutputs       []LegacyOutput   `json:"coinoutputs,omitempty"`
	BlockStakeInputs  []LegacyInput    `json:"blockstakeinputs,omitempty"`
	BlockStakeOutputs []LegacyOutput   `json:"blockstakeoutputs,omitempty"`
	MinerFees         []types.Currency `json:"minerfees"`
	ArbitraryData     []byte           `json:"arbitrarydata,omitempty"`
}

// LegacyInput is a v0 coin or block stake input.
type LegacyInput struct {
	ParentID types.OutputID `json:"parentid"`
	Unlocker LegacyUnlocker `json:"unlocker"`
}

// LegacyUnlocker is the v0 single signature unlock proof.
type LegacyUnlocker struct {
	Type        uint8                     `json:"type"`
	Condition   LegacyUnlockerCondition   `json:"condition"`
	Fulfillment LegacyUnlockerFulfillment `json:"fulfillment"`
}

// LegacyUnlockerCondition holds the public key of a v0 unlocker.
type LegacyUnlockerCondition struct {
	PublicKey types.PublicKey `json:"publickey"`
}

// LegacyUnlockerFulfillment holds the signature of a v0 unlocker.
type LegacyUnlockerFulfillment struct {
	Signature types.HexBytes `json:"signature"`
}

// LegacyOutput is a v0 output paying straight to an unlock hash.
type LegacyOutput struct {
	Value      types.Currency   `json:"value"`
	UnlockHash types.UnlockHash `json:"unlockhash"`
}

func (*TransactionV0) Version() Version { return VersionZero }

// Inputs returns the coin inputs in their normalized form.
func (t *TransactionV0) Inputs() []Input { return normalizeLegacyInputs(t.CoinInputs) }

// Outputs returns the coin outputs in their normalized form.
func (t *TransactionV0) Outputs() []Output { return normalizeLegacyOutputs(t.CoinOutputs) }

func (t *TransactionV0) Fees() []types.Currency { return t.MinerFees }
func (*TransactionV0) isTransaction()           {}

// Normalized converts a legacy output into the v1 form.
func (o LegacyOutput) Normalized() Output {
	return Output{Value: o.Value, Condition: NewUnlockHashCondition(o.UnlockHash)}
}

// Normalized converts a legacy input into the v1 form.
func (in LegacyInput) Normalized() Input {
	return Input{
		ParentID: in.ParentID,
		Fulfillment: SingleSignatureFulfillment{
			PublicKey: in.Unlocker.Condition.PublicKey,
			Signature: in.Unlocker.Fulfillment.Signature,
		},
	}
}

func normalizeLegacyInputs(ins []LegacyInput) []Input {
	if ins == nil {
		return nil
	}
	out := make([]Input, len(ins))
	for i, in := range ins {
		out[i] = in.Normalized()
	}
	return out
}

func normalizeLegacyOutputs(outs []LegacyOutput) []Output {
	if outs == nil {
		return nil
	}
	out := make([]Output, len(outs))
	for i, o := range outs {
		out[i] = o.Normalized()
	}
	return out
}
