package tx

import (
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// ExplorerTransaction is a transaction as reported by the explorer, together
// with the IDs the ledger assigned to its outputs and the outputs its inputs
// spend. RawTransaction and CoinInputOutputs are always normalized.
type ExplorerTransaction struct {
	ID                     types.TransactionID
	Height                 types.BlockHeight
	Parent                 types.BlockID
	RawTransaction         Transaction
	CoinInputOutputs       []Output
	CoinOutputIDs          []types.OutputID
	CoinOutputUnlockHashes []string
	BlockStakeOutputIDs    []types.OutputID
	Unconfirmed            bool
}

type explorerTransactionJSON struct {
	ID                     types.TransactionID `json:"id"`
	Height                 types.BlockHeight   `json:"height"`
	Parent                 types.BlockID       `json:"parent"`
	RawTransaction         json.RawMessage     `json:"rawtransaction"`
	CoinInputOutputs       []json.RawMessage   `json:"coininputoutputs"`
	CoinOutputIDs          []types.OutputID    `json:"coinoutputids"`
	CoinOutputUnlockHashes []string            `json:"coinoutputunlockhashes"`
	BlockStakeOutputIDs    []types.OutputID    `json:"blockstakeoutputids"`
	Unconfirmed            bool                `json:"unconfirmed"`
}

// UnmarshalJSON decodes an explorer record and normalizes it.
func (et *ExplorerTransaction) UnmarshalJSON(data []byte) error {
	var j explorerTransactionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	raw, err := DecodeNormalized(j.RawTransaction)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", j.ID, err)
	}
	var spent []Output
	if j.CoinInputOutputs != nil {
		spent = make([]Output, len(j.CoinInputOutputs))
		for i, r := range j.CoinInputOutputs {
			if spent[i], err = decodeAnyOutput(r); err != nil {
				return fmt.Errorf("transaction %s: coin input output %d: %w", j.ID, i, err)
			}
		}
	}
	*et = ExplorerTransaction{
		ID:                     j.ID,
		Height:                 j.Height,
		Parent:                 j.Parent,
		RawTransaction:         raw,
		CoinInputOutputs:       spent,
		CoinOutputIDs:          j.CoinOutputIDs,
		CoinOutputUnlockHashes: j.CoinOutputUnlockHashes,
		BlockStakeOutputIDs:    j.BlockStakeOutputIDs,
		Unconfirmed:            j.Unconfirmed,
	}
	return nil
}

// MarshalJSON encodes the normalized record.
func (et ExplorerTransaction) MarshalJSON() ([]byte, error) {
	raw, err := MarshalTransaction(et.RawTransaction)
	if err != nil {
		return nil, err
	}
	var spent []json.RawMessage
	if et.CoinInputOutputs != nil {
		spent = make([]json.RawMessage, len(et.CoinInputOutputs))
		for i, o := range et.CoinInputOutputs {
			if spent[i], err = json.Marshal(o); err != nil {
				return nil, err
			}
		}
	}
	return json.Marshal(explorerTransactionJSON{
		ID:                     et.ID,
		Height:                 et.Height,
		Parent:                 et.Parent,
		RawTransaction:         raw,
		CoinInputOutputs:       spent,
		CoinOutputIDs:          et.CoinOutputIDs,
		CoinOutputUnlockHashes: et.CoinOutputUnlockHashes,
		BlockStakeOutputIDs:    et.BlockStakeOutputIDs,
		Unconfirmed:            et.Unconfirmed,
	})
}

// decodeAnyOutput accepts both the v1 {value, condition} and the legacy
// {value, unlockhash} output forms.
func decodeAnyOutput(data []byte) (Output, error) {
	var shape struct {
		Condition  json.RawMessage `json:"condition"`
		UnlockHash json.RawMessage `json:"unlockhash"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return Output{}, err
	}
	if shape.Condition == nil && shape.UnlockHash != nil {
		var lo LegacyOutput
		if err := json.Unmarshal(data, &lo); err != nil {
			return Output{}, err
		}
		return lo.Normalized(), nil
	}
	var o Output
	if err := json.Unmarshal(data, &o); err != nil {
		return Output{}, err
	}
	return o, nil
}
