package tx

import (
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// ConditionType tags the spending rule attached to an output.
type ConditionType uint8

const (
	ConditionTypeNil            ConditionType = 0
	ConditionTypeUnlockHash     ConditionType = 1
	ConditionTypeAtomicSwap     ConditionType = 2
	ConditionTypeTimeLock       ConditionType = 3
	ConditionTypeMultiSignature ConditionType = 4
)

// String returns a human-readable name for the condition type.
func (ct ConditionType) String() string {
	switch ct {
	case ConditionTypeNil:
		return "nil"
	case ConditionTypeUnlockHash:
		return "unlockhash"
	case ConditionTypeAtomicSwap:
		return "atomicswap"
	case ConditionTypeTimeLock:
		return "timelock"
	case ConditionTypeMultiSignature:
		return "multisig"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(ct))
	}
}

// Condition is the closed set of output conditions. Only types in this
// package implement it.
type Condition interface {
	Type() ConditionType
	isCondition()
}

// NilCondition can be fulfilled by anyone.
type NilCondition struct{}

// UnlockHashCondition is spendable by a single address.
type UnlockHashCondition struct {
	UnlockHash types.UnlockHash `json:"unlockhash"`
}

// AtomicSwapCondition is spendable by the receiver with the secret, or by the
// sender once the timelock has passed.
type AtomicSwapCondition struct {
	Sender       types.UnlockHash `json:"sender"`
	Receiver     types.UnlockHash `json:"receiver"`
	HashedSecret types.Hash       `json:"hashedsecret"`
	TimeLock     uint64           `json:"timelock"`
}

// TimeLockCondition wraps another condition that only becomes spendable once
// LockTime has passed (block height below types.LockTimeBlockLimit, unix
// timestamp otherwise).
type TimeLockCondition struct {
	LockTime  uint64
	Condition Condition
}

// MultiSignatureCondition requires MinimumSignatureCount signatures from the listed addresses.
type MultiSignatureCondition struct {
	UnlockHashes          []types.UnlockHash `json:"unlockhashes"`
	MinimumSignatureCount uint64             `json:"minimumsignaturecount"`
}

// UnknownCondition keeps a condition of a type this wallet does not know.
// It is never owned by anyone as far as the wallet is concerned.
type UnknownCondition struct {
	ConditionType ConditionType
	Data          json.RawMessage
}

func (NilCondition) Type() ConditionType            { return ConditionTypeNil }
func (UnlockHashCondition) Type() ConditionType     { return ConditionTypeUnlockHash }
func (AtomicSwapCondition) Type() ConditionType     { return ConditionTypeAtomicSwap }
func (TimeLockCondition) Type() ConditionType       { return ConditionTypeTimeLock }
func (MultiSignatureCondition) Type() ConditionType { return ConditionTypeMultiSignature }
func (c UnknownCondition) Type() ConditionType      { return c.ConditionType }

func (NilCondition) isCondition()            {}
func (UnlockHashCondition) isCondition()     {}
func (AtomicSwapCondition) isCondition()     {}
func (TimeLockCondition) isCondition()       {}
func (MultiSignatureCondition) isCondition() {}
func (UnknownCondition) isCondition()        {}

// NewUnlockHashCondition is shorthand for an address condition.
func NewUnlockHashCondition(uh types.UnlockHash) Condition {
	return UnlockHashCondition{UnlockHash: uh}
}

// conditionJSON is the wire form {"type": N, "data": {...}}.
type conditionJSON struct {
	Type ConditionType   `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type timeLockJSON struct {
	LockTime  uint64          `json:"locktime"`
	Condition json.RawMessage `json:"condition"`
}

// MarshalCondition encodes a condition in its wire form.
func MarshalCondition(c Condition) ([]byte, error) {
	if c == nil {
		c = NilCondition{}
	}
	var data any
	switch c := c.(type) {
	case NilCondition:
		return json.Marshal(conditionJSON{Type: ConditionTypeNil})
	case UnlockHashCondition, AtomicSwapCondition, MultiSignatureCondition:
		data = c
	case TimeLockCondition:
		inner, err := MarshalCondition(c.Condition)
		if err != nil {
			return nil, err
		}
		data = timeLockJSON{LockTime: c.LockTime, Condition: inner}
	case UnknownCondition:
		return json.Marshal(conditionJSON{Type: c.ConditionType, Data: c.Data})
	default:
		return nil, fmt.Errorf("marshal condition: unsupported type %T", c)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionJSON{Type: c.Type(), Data: raw})
}

// UnmarshalCondition decodes a condition from its wire form. Unknown types
// decode to UnknownCondition; an empty or null document decodes to NilCondition.
func UnmarshalCondition(data []byte) (Condition, error) {
	if len(data) == 0 || string(data) == "null" {
		return NilCondition{}, nil
	}
	var j conditionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode condition: %w", err)
	}
	hasData := len(j.Data) > 0 && string(j.Data) != "null"
	switch j.Type {
	case ConditionTypeNil:
		return NilCondition{}, nil
	case ConditionTypeUnlockHash:
		var c UnlockHashCondition
		if err := decodeConditionData(j, hasData, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ConditionTypeAtomicSwap:
		var c AtomicSwapCondition
		if err := decodeConditionData(j, hasData, &c); err != nil {
			return nil, err
		}
		return c, nil
	case ConditionTypeTimeLock:
		var tl timeLockJSON
		if err := decodeConditionData(j, hasData, &tl); err != nil {
			return nil, err
		}
		inner, err := UnmarshalCondition(tl.Condition)
		if err != nil {
			return nil, fmt.Errorf("decode timelock inner condition: %w", err)
		}
		return TimeLockCondition{LockTime: tl.LockTime, Condition: inner}, nil
	case ConditionTypeMultiSignature:
		var c MultiSignatureCondition
		if err := decodeConditionData(j, hasData, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return UnknownCondition{ConditionType: j.Type, Data: j.Data}, nil
	}
}

func decodeConditionData(j conditionJSON, hasData bool, v any) error {
	if !hasData {
		return fmt.Errorf("decode %s condition: missing data", j.Type)
	}
	if err := json.Unmarshal(j.Data, v); err != nil {
		return fmt.Errorf("decode %s condition: %w", j.Type, err)
	}
	return nil
}
