package tx

import (
	"encoding/json"
	"fmt"
)

// transactionJSON is the versioned wire envelope {"version": N, "data": {...}}.
type transactionJSON struct {
	Version Version         `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// MarshalTransaction encodes t in its versioned wire form.
func MarshalTransaction(t Transaction) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("marshal transaction: %w", ErrInvalidTransaction)
	}
	switch t.(type) {
	case *TransactionV0, *TransactionV1, *ERC20Conversion, *ERC20CoinCreation, *ERC20AddressRegistration:
	default:
		return nil, fmt.Errorf("marshal %T: %w", t, ErrUnknownVersion)
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction: %w", err)
	}
	return json.Marshal(transactionJSON{Version: t.Version(), Data: data})
}

// DecodeTransaction decodes a versioned transaction exactly as it appears on
// the wire. Legacy transactions are returned as *TransactionV0; callers that
// feed the accounting code use DecodeNormalized instead.
func DecodeTransaction(data []byte) (Transaction, error) {
	var j transactionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	var t Transaction
	switch j.Version {
	case VersionZero:
		t = &TransactionV0{}
	case VersionOne:
		t = &TransactionV1{}
	case VersionERC20Conversion:
		t = &ERC20Conversion{}
	case VersionERC20CoinCreation:
		t = &ERC20CoinCreation{}
	case VersionERC20AddressRegistration:
		t = &ERC20AddressRegistration{}
	default:
		return nil, fmt.Errorf("decode transaction version %d: %w", j.Version, ErrUnknownVersion)
	}
	if len(j.Data) == 0 {
		return nil, fmt.Errorf("decode transaction version %d: missing data: %w", j.Version, ErrInvalidTransaction)
	}
	if err := json.Unmarshal(j.Data, t); err != nil {
		return nil, fmt.Errorf("decode transaction version %d: %w", j.Version, err)
	}
	return t, nil
}

// DecodeNormalized decodes a transaction and normalizes it.
func DecodeNormalized(data []byte) (Transaction, error) {
	t, err := DecodeTransaction(data)
	if err != nil {
		return nil, err
	}
	return Normalize(t), nil
}

// Envelope carries a Transaction through encoding/json. Decoding normalizes.
type Envelope struct {
	Transaction Transaction
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return MarshalTransaction(e.Transaction)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	t, err := DecodeNormalized(data)
	if err != nil {
		return err
	}
	e.Transaction = t
	return nil
}
