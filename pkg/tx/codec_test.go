package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

func legacyTransactionJSON(addr types.UnlockHash, parent types.OutputID) string {
	return fmt.Sprintf(`{
		"version": 0,
		"data": {
			"coininputs": [{
				"parentid": %q,
				"unlocker": {
					"type": 1,
					"condition": {"publickey": "ed25519:%s"},
					"fulfillment": {"signature": "abcd"}
				}
			}],
			"coinoutputs": [{"value": "5000000000", "unlockhash": %q}],
			"minerfees": ["100000000"],
			"arbitrarydata": "aGVsbG8="
		}
	}`, parent, strings.Repeat("11", 32), addr)
}

func TestDecodeTransaction_Legacy(t *testing.T) {
	addr := testAddr(1)
	parent := testOutputID(9)
	raw, err := DecodeTransaction([]byte(legacyTransactionJSON(addr, parent)))
	if err != nil {
		t.Fatalf("DecodeTransaction: %v", err)
	}
	if _, ok := raw.(*TransactionV0); !ok {
		t.Fatalf("decoded %T, want *TransactionV0", raw)
	}

	norm := Normalize(raw)
	v1, ok := norm.(*TransactionV1)
	if !ok {
		t.Fatalf("normalized %T, want *TransactionV1", norm)
	}
	if len(v1.CoinOutputs) != 1 {
		t.Fatalf("outputs = %d, want 1", len(v1.CoinOutputs))
	}
	if !reflect.DeepEqual(v1.CoinOutputs[0].Condition, NewUnlockHashCondition(addr)) {
		t.Errorf("output condition = %#v", v1.CoinOutputs[0].Condition)
	}
	if v1.CoinOutputs[0].Value.String() != "5000000000" {
		t.Errorf("output value = %s, want 5000000000", v1.CoinOutputs[0].Value)
	}
	if len(v1.CoinInputs) != 1 || v1.CoinInputs[0].ParentID != parent {
		t.Fatalf("inputs = %+v", v1.CoinInputs)
	}
	f, ok := v1.CoinInputs[0].Fulfillment.(SingleSignatureFulfillment)
	if !ok {
		t.Fatalf("fulfillment %T, want SingleSignatureFulfillment", v1.CoinInputs[0].Fulfillment)
	}
	if f.PublicKey.Algorithm != types.AlgorithmEd25519 || len(f.PublicKey.Key) != 32 {
		t.Errorf("public key = %s", f.PublicKey)
	}
	if string(f.Signature) != "\xab\xcd" {
		t.Errorf("signature = %x, want abcd", f.Signature)
	}
	if len(v1.MinerFees) != 1 || v1.MinerFees[0].String() != "100000000" {
		t.Errorf("miner fees = %v", v1.MinerFees)
	}
	if string(v1.ArbitraryData) != "hello" {
		t.Errorf("arbitrary data = %q, want hello", v1.ArbitraryData)
	}
}

func TestNormalize_IdentityForNewKinds(t *testing.T) {
	kinds := []Transaction{
		&TransactionV1{},
		&ERC20Conversion{},
		&ERC20CoinCreation{},
		&ERC20AddressRegistration{},
	}
	for _, k := range kinds {
		if got := Normalize(k); got != k {
			t.Errorf("Normalize(%T) returned a different value", k)
		}
	}
}

func TestTransaction_RoundTrip(t *testing.T) {
	refund := Output{Value: coins(1), Condition: NewUnlockHashCondition(testAddr(1))}
	tftAddr := testAddr(1)
	kinds := []Transaction{
		NewBuilder().
			AddInput(testOutputID(1)).
			AddOutput(coins(2), NewUnlockHashCondition(testAddr(2))).
			AddMinerFee(types.NewCurrency64(DefaultMinerFee)).
			Build(),
		&ERC20Conversion{
			Address:          types.ERC20Address{0xde, 0xad},
			Value:            coins(3),
			TransactionFee:   types.NewCurrency64(DefaultMinerFee),
			CoinInputs:       []Input{{ParentID: testOutputID(2), Fulfillment: BlankFulfillment()}},
			RefundCoinOutput: &refund,
		},
		&ERC20CoinCreation{
			Address:            testAddr(3),
			Value:              coins(4),
			TransactionFee:     types.NewCurrency64(DefaultMinerFee),
			ERC20BlockID:       types.Hash{1},
			ERC20TransactionID: types.Hash{2},
		},
		&ERC20AddressRegistration{
			PublicKey:       types.PublicKey{Algorithm: types.AlgorithmEd25519, Key: make([]byte, 32)},
			TFTAddress:      &tftAddr,
			Signature:       types.HexBytes{1},
			RegistrationFee: types.NewCurrency64(AddressRegistrationFee),
			TransactionFee:  types.NewCurrency64(DefaultMinerFee),
			CoinInputs:      []Input{{ParentID: testOutputID(3), Fulfillment: BlankFulfillment()}},
		},
	}
	for _, want := range kinds {
		t.Run(fmt.Sprintf("%T", want), func(t *testing.T) {
			data, err := MarshalTransaction(want)
			if err != nil {
				t.Fatalf("MarshalTransaction: %v", err)
			}
			var env struct {
				Version Version `json:"version"`
			}
			if err := json.Unmarshal(data, &env); err != nil {
				t.Fatalf("Unmarshal envelope: %v", err)
			}
			if env.Version != want.Version() {
				t.Errorf("wire version = %d, want %d", env.Version, want.Version())
			}
			got, err := DecodeTransaction(data)
			if err != nil {
				t.Fatalf("DecodeTransaction: %v", err)
			}
			again, err := MarshalTransaction(got)
			if err != nil {
				t.Fatalf("MarshalTransaction(decoded): %v", err)
			}
			if string(again) != string(data) {
				t.Errorf("re-encoded = %s, want %s", again, data)
			}
		})
	}
}

func TestDecodeTransaction_UnknownVersion(t *testing.T) {
	_, err := DecodeTransaction([]byte(`{"version":7,"data":{}}`))
	if !errors.Is(err, ErrUnknownVersion) {
		t.Errorf("err = %v, want ErrUnknownVersion", err)
	}
}

func TestEnvelope_NormalizesOnDecode(t *testing.T) {
	var env Envelope
	if err := json.Unmarshal([]byte(legacyTransactionJSON(testAddr(1), testOutputID(1))), &env); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if env.Transaction.Version() != VersionOne {
		t.Errorf("version = %d, want 1", env.Transaction.Version())
	}
}

func TestTransaction_FeesAndOutputs(t *testing.T) {
	reg := &ERC20AddressRegistration{
		RegistrationFee: types.NewCurrency64(AddressRegistrationFee),
		TransactionFee:  types.NewCurrency64(DefaultMinerFee),
	}
	if got := TotalFees(reg); got.String() != "10100000000" {
		t.Errorf("TotalFees = %s, want 10100000000", got)
	}
	if got := TotalMinerFees(reg); got.String() != "100000000" {
		t.Errorf("TotalMinerFees = %s, want 100000000", got)
	}
	if got := reg.Outputs(); got != nil {
		t.Errorf("Outputs without refund = %v, want nil", got)
	}

	conv := &ERC20Conversion{Value: coins(3), TransactionFee: coins(1)}
	if got := TotalOutputs(conv); !got.Equals(coins(3)) {
		t.Errorf("TotalOutputs(conversion) = %s, want %s", got, coins(3))
	}
}
