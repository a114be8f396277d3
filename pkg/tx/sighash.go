package tx

import (
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/crypto"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

const registrationSpecifier = "erc20 addr reg"

// SignatureHash returns the hash that the fulfillment of input inputIndex
// signs. Fulfillments themselves are not covered.
func SignatureHash(t Transaction, inputIndex uint64) (types.Hash, error) {
	e := crypto.NewEncoder()
	e.EncodeByte(byte(t.Version()))
	e.EncodeUint64(inputIndex)
	switch t := t.(type) {
	case *TransactionV1:
		encodeInputIDs(e, t.CoinInputs)
		encodeOutputs(e, t.CoinOutputs)
		encodeInputIDs(e, t.BlockStakeInputs)
		encodeOutputs(e, t.BlockStakeOutputs)
		e.EncodeUint64(uint64(len(t.MinerFees)))
		for _, fee := range t.MinerFees {
			e.EncodeCurrency(fee)
		}
		e.EncodeBytes(t.ArbitraryData)
	case *ERC20Conversion:
		e.EncodeFixed(t.Address[:])
		e.EncodeCurrency(t.Value)
		e.EncodeCurrency(t.TransactionFee)
		encodeInputIDs(e, t.CoinInputs)
		encodeRefund(e, t.RefundCoinOutput)
	case *ERC20AddressRegistration:
		e.EncodePublicKey(t.PublicKey)
		e.EncodeBytes(t.Signature)
		e.EncodeCurrency(t.RegistrationFee)
		e.EncodeCurrency(t.TransactionFee)
		encodeInputIDs(e, t.CoinInputs)
		encodeRefund(e, t.RefundCoinOutput)
	case *TransactionV0:
		return types.Hash{}, ErrNotNormalized
	default:
		return types.Hash{}, fmt.Errorf("signature hash of %T: %w", t, ErrUnknownVersion)
	}
	return crypto.HashEncoded(e), nil
}

// RegistrationSignatureHash returns the hash that the registration signature
// signs, proving ownership of the registered public key.
func RegistrationSignatureHash(t *ERC20AddressRegistration) types.Hash {
	e := crypto.NewEncoder()
	e.EncodeSpecifier(registrationSpecifier)
	e.EncodePublicKey(t.PublicKey)
	return crypto.HashEncoded(e)
}

func encodeInputIDs(e *crypto.Encoder, ins []Input) {
	e.EncodeUint64(uint64(len(ins)))
	for _, in := range ins {
		e.EncodeFixed(in.ParentID[:])
	}
}

func encodeOutputs(e *crypto.Encoder, outs []Output) {
	e.EncodeUint64(uint64(len(outs)))
	for _, o := range outs {
		encodeOutput(e, o)
	}
}

func encodeRefund(e *crypto.Encoder, o *Output) {
	if o == nil {
		e.EncodeByte(0)
		return
	}
	e.EncodeByte(1)
	encodeOutput(e, *o)
}

func encodeOutput(e *crypto.Encoder, o Output) {
	e.EncodeCurrency(o.Value)
	encodeCondition(e, o.Condition)
}

// encodeCondition appends type(1) | len(8) | body.
func encodeCondition(e *crypto.Encoder, c Condition) {
	if c == nil {
		c = NilCondition{}
	}
	body := crypto.NewEncoder()
	switch c := c.(type) {
	case UnlockHashCondition:
		body.EncodeUnlockHash(c.UnlockHash)
	case AtomicSwapCondition:
		body.EncodeUnlockHash(c.Sender)
		body.EncodeUnlockHash(c.Receiver)
		body.EncodeFixed(c.HashedSecret[:])
		body.EncodeUint64(c.TimeLock)
	case TimeLockCondition:
		body.EncodeUint64(c.LockTime)
		encodeCondition(body, c.Condition)
	case MultiSignatureCondition:
		body.EncodeUint64(c.MinimumSignatureCount)
		body.EncodeUint64(uint64(len(c.UnlockHashes)))
		for _, uh := range c.UnlockHashes {
			body.EncodeUnlockHash(uh)
		}
	case UnknownCondition:
		body.EncodeFixed(c.Data)
	}
	e.EncodeByte(byte(c.Type()))
	e.EncodeBytes(body.Bytes())
}
