package tx

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

func TestCondition_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
	}{
		{"nil", NilCondition{}},
		{"unlockhash", UnlockHashCondition{UnlockHash: testAddr(1)}},
		{"atomicswap", AtomicSwapCondition{
			Sender:       testAddr(1),
			Receiver:     testAddr(2),
			HashedSecret: types.Hash{0xab},
			TimeLock:     1_600_000_000,
		}},
		{"timelock", TimeLockCondition{LockTime: 1000, Condition: UnlockHashCondition{UnlockHash: testAddr(3)}}},
		{"multisig", MultiSignatureCondition{
			UnlockHashes:          []types.UnlockHash{testAddr(1), testAddr(2)},
			MinimumSignatureCount: 2,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalCondition(tt.cond)
			if err != nil {
				t.Fatalf("MarshalCondition: %v", err)
			}
			got, err := UnmarshalCondition(data)
			if err != nil {
				t.Fatalf("UnmarshalCondition(%s): %v", data, err)
			}
			if !reflect.DeepEqual(got, tt.cond) {
				t.Errorf("round trip = %#v, want %#v", got, tt.cond)
			}
		})
	}
}

func TestCondition_TimeLockWireForm(t *testing.T) {
	addr := testAddr(7)
	data, err := MarshalCondition(TimeLockCondition{LockTime: 42, Condition: NewUnlockHashCondition(addr)})
	if err != nil {
		t.Fatalf("MarshalCondition: %v", err)
	}
	want := `{"type":3,"data":{"locktime":42,"condition":{"type":1,"data":{"unlockhash":"` + addr.String() + `"}}}}`
	if string(data) != want {
		t.Errorf("wire form = %s, want %s", data, want)
	}
}

func TestCondition_UnknownPreserved(t *testing.T) {
	in := `{"type":9,"data":{"foo":"bar"}}`
	c, err := UnmarshalCondition([]byte(in))
	if err != nil {
		t.Fatalf("UnmarshalCondition: %v", err)
	}
	u, ok := c.(UnknownCondition)
	if !ok {
		t.Fatalf("got %T, want UnknownCondition", c)
	}
	if u.Type() != 9 {
		t.Errorf("type = %d, want 9", u.Type())
	}
	out, err := MarshalCondition(c)
	if err != nil {
		t.Fatalf("MarshalCondition: %v", err)
	}
	if string(out) != in {
		t.Errorf("re-encoded = %s, want %s", out, in)
	}
}

func TestCondition_MissingData(t *testing.T) {
	_, err := UnmarshalCondition([]byte(`{"type":1}`))
	if err == nil || !strings.Contains(err.Error(), "missing data") {
		t.Errorf("err = %v, want missing data error", err)
	}
}

func TestOutput_JSON(t *testing.T) {
	o := Output{Value: coins(5), Condition: NewUnlockHashCondition(testAddr(1))}
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Output
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Value.Equals(o.Value) {
		t.Errorf("value = %s, want %s", got.Value, o.Value)
	}
	if !reflect.DeepEqual(got.Condition, o.Condition) {
		t.Errorf("condition = %#v, want %#v", got.Condition, o.Condition)
	}
}

func TestFulfillment_RoundTrip(t *testing.T) {
	pk := types.PublicKey{Algorithm: types.AlgorithmEd25519, Key: make([]byte, 32)}
	tests := []struct {
		name string
		f    Fulfillment
	}{
		{"nil", NilFulfillment{}},
		{"singlesig", SingleSignatureFulfillment{PublicKey: pk, Signature: types.HexBytes{1, 2, 3}}},
		{"atomicswap", AtomicSwapFulfillment{PublicKey: pk, Signature: types.HexBytes{4}, Secret: types.HexBytes{5}}},
		{"multisig", MultiSignatureFulfillment{Pairs: []KeySignaturePair{{PublicKey: pk, Signature: types.HexBytes{6}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalFulfillment(tt.f)
			if err != nil {
				t.Fatalf("MarshalFulfillment: %v", err)
			}
			got, err := UnmarshalFulfillment(data)
			if err != nil {
				t.Fatalf("UnmarshalFulfillment(%s): %v", data, err)
			}
			if !reflect.DeepEqual(got, tt.f) {
				t.Errorf("round trip = %#v, want %#v", got, tt.f)
			}
		})
	}
}

func TestFulfillment_BlankSingleSignature(t *testing.T) {
	data, err := MarshalFulfillment(BlankFulfillment())
	if err != nil {
		t.Fatalf("MarshalFulfillment: %v", err)
	}
	want := `{"type":1,"data":{"publickey":"","signature":""}}`
	if string(data) != want {
		t.Errorf("blank fulfillment = %s, want %s", data, want)
	}
}
