package wallet

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/tx"
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// ErrInvalidRequest is returned for a request that cannot be built.
var ErrInvalidRequest = errors.New("invalid request")

// Kind selects the transaction shape a Request builds.
type Kind uint8

// Request kinds.
const (
	KindTransfer Kind = iota
	KindERC20Conversion
	KindERC20AddressRegistration
)

func (k Kind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindERC20Conversion:
		return "erc20-conversion"
	case KindERC20AddressRegistration:
		return "erc20-address-registration"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Request describes a payment the wallet should build.
type Request struct {
	Kind Kind
	From types.UnlockHash

	// To is the destination of a transfer.
	To types.UnlockHash
	// Amount is zero for address registrations.
	Amount types.Currency
	Fee    types.Currency

	// ERC20Address is the withdrawal address of a conversion.
	ERC20Address types.ERC20Address
	// PublicKey is the key an address registration binds.
	PublicKey types.PublicKey

	// ArbitraryData is attached to transfers only.
	ArbitraryData []byte
}

// Validate checks the request fields required by its kind.
func (r Request) Validate() error {
	if r.From.IsZero() {
		return fmt.Errorf("%w: missing source address", ErrInvalidRequest)
	}
	if r.Fee.IsZero() {
		return fmt.Errorf("%w: fee must be positive", ErrInvalidRequest)
	}
	switch r.Kind {
	case KindTransfer:
		if r.To.IsZero() {
			return fmt.Errorf("%w: missing destination address", ErrInvalidRequest)
		}
		if r.Amount.IsZero() {
			return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
		}
	case KindERC20Conversion:
		if r.ERC20Address.IsZero() {
			return fmt.Errorf("%w: missing erc20 address", ErrInvalidRequest)
		}
		if r.Amount.IsZero() {
			return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
		}
	case KindERC20AddressRegistration:
		if r.PublicKey.IsZero() {
			return fmt.Errorf("%w: missing public key", ErrInvalidRequest)
		}
		if !r.Amount.IsZero() {
			return fmt.Errorf("%w: address registration takes no amount", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidRequest, r.Kind)
	}
	if r.Kind != KindTransfer && len(r.ArbitraryData) > 0 {
		return fmt.Errorf("%w: arbitrary data is only allowed on transfers", ErrInvalidRequest)
	}
	return nil
}

// RegistrationFee returns the fixed registration fee for registrations and
// zero otherwise.
func (r Request) RegistrationFee() types.Currency {
	if r.Kind == KindERC20AddressRegistration {
		return types.NewCurrency64(tx.AddressRegistrationFee)
	}
	return types.ZeroCurrency
}

// RequiredFunds is the amount the selected inputs must cover.
func (r Request) RequiredFunds() types.Currency {
	return r.Amount.Add(r.Fee).Add(r.RegistrationFee())
}
