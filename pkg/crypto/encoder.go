package crypto

import (
	"encoding/binary"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// SpecifierSize is the fixed width of a type specifier in the binary encoding.
const SpecifierSize = 16

// Encoder accumulates the canonical binary form used for hashing:
// integers are little-endian uint64, variable-length byte strings and
// slices are prefixed with their length as uint64.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// EncodeUint64 appends v as 8 little-endian bytes.
func (e *Encoder) EncodeUint64(v uint64) *Encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

// EncodeByte appends a single byte.
func (e *Encoder) EncodeByte(b byte) *Encoder {
	e.buf = append(e.buf, b)
	return e
}

// EncodeFixed appends b without a length prefix.
func (e *Encoder) EncodeFixed(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

// EncodeBytes appends b with a length prefix.
func (e *Encoder) EncodeBytes(b []byte) *Encoder {
	e.EncodeUint64(uint64(len(b)))
	e.buf = append(e.buf, b...)
	return e
}

// EncodeSpecifier appends s zero-padded to SpecifierSize bytes.
func (e *Encoder) EncodeSpecifier(s string) *Encoder {
	var spec [SpecifierSize]byte
	copy(spec[:], s)
	e.buf = append(e.buf, spec[:]...)
	return e
}

// EncodeCurrency appends the big-endian magnitude of c with a length prefix.
func (e *Encoder) EncodeCurrency(c types.Currency) *Encoder {
	return e.EncodeBytes(c.Big().Bytes())
}

// EncodeUnlockHash appends type(1) | hash(32).
func (e *Encoder) EncodeUnlockHash(uh types.UnlockHash) *Encoder {
	e.EncodeByte(byte(uh.Type))
	return e.EncodeFixed(uh.Hash[:])
}

// EncodePublicKey appends specifier(16) | len(8) | key.
func (e *Encoder) EncodePublicKey(pk types.PublicKey) *Encoder {
	e.EncodeSpecifier(pk.Algorithm)
	return e.EncodeBytes(pk.Key)
}
