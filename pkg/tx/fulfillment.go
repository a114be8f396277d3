package tx

import (
	"encoding/json"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// FulfillmentType tags the proof attached to an input.
type FulfillmentType uint8

const (
	FulfillmentTypeNil             FulfillmentType = 0
	FulfillmentTypeSingleSignature FulfillmentType = 1
	FulfillmentTypeAtomicSwap      FulfillmentType = 2
	FulfillmentTypeMultiSignature  FulfillmentType = 3
)

// Fulfillment is the closed set of input proofs.
type Fulfillment interface {
	Type() FulfillmentType
	isFulfillment()
}

// NilFulfillment is the empty proof.
type NilFulfillment struct{}

// SingleSignatureFulfillment proves ownership of an unlock hash condition.
// A zero PublicKey and empty Signature is the blank placeholder of an
// unsigned input.
type SingleSignatureFulfillment struct {
	PublicKey types.PublicKey `json:"publickey"`
	Signature types.HexBytes  `json:"signature"`
}

// AtomicSwapFulfillment claims or refunds an atomic swap output.
type AtomicSwapFulfillment struct {
	PublicKey types.PublicKey `json:"publickey"`
	Signature types.HexBytes  `json:"signature"`
	Secret    types.HexBytes  `json:"secret,omitempty"`
}

// KeySignaturePair is one signer of a multisig fulfillment.
type KeySignaturePair struct {
	PublicKey types.PublicKey `json:"publickey"`
	Signature types.HexBytes  `json:"signature"`
}

// MultiSignatureFulfillment carries the signatures of a multisig condition.
type MultiSignatureFulfillment struct {
	Pairs []KeySignaturePair `json:"pairs"`
}

// UnknownFulfillment keeps a fulfillment of an unrecognized type.
type UnknownFulfillment struct {
	FulfillmentType FulfillmentType
	Data            json.RawMessage
}

func (NilFulfillment) Type() FulfillmentType             { return FulfillmentTypeNil }
func (SingleSignatureFulfillment) Type() FulfillmentType { return FulfillmentTypeSingleSignature }
func (AtomicSwapFulfillment) Type() FulfillmentType      { return FulfillmentTypeAtomicSwap }
func (MultiSignatureFulfillment) Type() FulfillmentType  { return FulfillmentTypeMultiSignature }
func (f UnknownFulfillment) Type() FulfillmentType       { return f.FulfillmentType }

func (NilFulfillment) isFulfillment()             {}
func (SingleSignatureFulfillment) isFulfillment() {}
func (AtomicSwapFulfillment) isFulfillment()      {}
func (MultiSignatureFulfillment) isFulfillment()  {}
func (UnknownFulfillment) isFulfillment()         {}

// BlankFulfillment returns the placeholder a signer replaces.
func BlankFulfillment() Fulfillment {
	return SingleSignatureFulfillment{}
}

type fulfillmentJSON struct {
	Type FulfillmentType `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MarshalFulfillment encodes a fulfillment in its wire form.
func MarshalFulfillment(f Fulfillment) ([]byte, error) {
	if f == nil {
		f = NilFulfillment{}
	}
	switch f := f.(type) {
	case NilFulfillment:
		return json.Marshal(fulfillmentJSON{Type: FulfillmentTypeNil})
	case UnknownFulfillment:
		return json.Marshal(fulfillmentJSON{Type: f.FulfillmentType, Data: f.Data})
	case SingleSignatureFulfillment, AtomicSwapFulfillment, MultiSignatureFulfillment:
		raw, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		return json.Marshal(fulfillmentJSON{Type: f.Type(), Data: raw})
	default:
		return nil, fmt.Errorf("marshal fulfillment: unsupported type %T", f)
	}
}

// UnmarshalFulfillment decodes a fulfillment from its wire form.
func UnmarshalFulfillment(data []byte) (Fulfillment, error) {
	if len(data) == 0 || string(data) == "null" {
		return NilFulfillment{}, nil
	}
	var j fulfillmentJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode fulfillment: %w", err)
	}
	if j.Type == FulfillmentTypeNil {
		return NilFulfillment{}, nil
	}
	var f Fulfillment
	var err error
	switch j.Type {
	case FulfillmentTypeSingleSignature:
		var v SingleSignatureFulfillment
		err = json.Unmarshal(j.Data, &v)
		f = v
	case FulfillmentTypeAtomicSwap:
		var v AtomicSwapFulfillment
		err = json.Unmarshal(j.Data, &v)
		f = v
	case FulfillmentTypeMultiSignature:
		var v MultiSignatureFulfillment
		err = json.Unmarshal(j.Data, &v)
		f = v
	default:
		return UnknownFulfillment{FulfillmentType: j.Type, Data: j.Data}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode fulfillment type %d: %w", j.Type, err)
	}
	return f, nil
}
