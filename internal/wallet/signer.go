package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// ErrSignatureFailed wraps every failure to sign a transaction.
var ErrSignatureFailed = errors.New("signature failed")

// Signer fills the fulfillments of an unsigned transaction.
type Signer interface {
	Sign(ctx context.Context, u *UnsignedTransaction) (tx.Transaction, error)
}

// LocalSigner signs with keys held in memory.
type LocalSigner struct {
	keys *KeyRing
}

// NewLocalSigner creates a signer over keys.
func NewLocalSigner(keys *KeyRing) *LocalSigner {
	return &LocalSigner{keys: keys}
}

// Sign returns a signed copy of u.Transaction. Every coin input is signed
// exactly once by the key owning the output it spends. An address
// registration also gets the signature of its registered key, which is
// filled first because the input signatures cover it.
func (s *LocalSigner) Sign(ctx context.Context, u *UnsignedTransaction) (tx.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignatureFailed, err)
	}
	signed, inputs, err := cloneForSigning(u.Transaction)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignatureFailed, err)
	}
	if len(inputs) != len(u.Inputs) {
		return nil, fmt.Errorf("%w: %d inputs, %d spent outputs", ErrSignatureFailed, len(inputs), len(u.Inputs))
	}

	if reg, ok := signed.(*tx.ERC20AddressRegistration); ok {
		key, ok := s.keys.KeyForPublicKey(reg.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: no key for registered public key %s", ErrSignatureFailed, reg.PublicKey)
		}
		reg.Signature = key.Sign(tx.RegistrationSignatureHash(reg))
	}

	for i := range inputs {
		spent := u.Inputs[i]
		if inputs[i].ParentID != spent.ID {
			return nil, fmt.Errorf("%w: input %d spends %s, expected %s", ErrSignatureFailed, i, inputs[i].ParentID, spent.ID)
		}
		addr, ok := tx.ConditionUnlockHash(spent.Condition)
		if !ok {
			return nil, fmt.Errorf("%w: input %d: output %s has no single owner", ErrSignatureFailed, i, spent.ID)
		}
		key, ok := s.keys.Key(addr)
		if !ok {
			return nil, fmt.Errorf("%w: input %d: no key for %s", ErrSignatureFailed, i, addr)
		}
		hash, err := tx.SignatureHash(signed, uint64(i))
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %w", ErrSignatureFailed, i, err)
		}
		inputs[i].Fulfillment = tx.SingleSignatureFulfillment{
			PublicKey: key.PublicKey(),
			Signature: types.HexBytes(key.Sign(hash)),
		}
	}
	return signed, nil
}

// cloneForSigning copies t deep enough that filling fulfillments and the
// registration signature leaves t untouched. The returned slice aliases
// the copy's coin inputs.
func cloneForSigning(t tx.Transaction) (tx.Transaction, []tx.Input, error) {
	switch t := t.(type) {
	case *tx.TransactionV1:
		c := *t
		c.CoinInputs = append([]tx.Input(nil), t.CoinInputs...)
		return &c, c.CoinInputs, nil
	case *tx.ERC20Conversion:
		c := *t
		c.CoinInputs = append([]tx.Input(nil), t.CoinInputs...)
		return &c, c.CoinInputs, nil
	case *tx.ERC20AddressRegistration:
		c := *t
		c.CoinInputs = append([]tx.Input(nil), t.CoinInputs...)
		return &c, c.CoinInputs, nil
	default:
		return nil, nil, fmt.Errorf("sign %T: %w", t, tx.ErrUnknownVersion)
	}
}
