package tx

import (
	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Ownership is the result of evaluating a condition against an address.
type Ownership uint8

const (
	NotOwned Ownership = iota
	OwnedLocked
	OwnedUnlocked
)

// String returns a human-readable name for the ownership state.
func (o Ownership) String() string {
	switch o {
	case OwnedLocked:
		return "locked"
	case OwnedUnlocked:
		return "unlocked"
	default:
		return "not owned"
	}
}

// OwnedBy reports whether addr controls an output guarded by c at the given clock.
//
// An unlock hash condition is owned when it names addr. A timelock condition
// is owned when its inner unlock hash names addr; it is unlocked once the
// lock time is reached (block height below types.LockTimeBlockLimit, unix
// seconds otherwise) and locked before. Atomic swap, multisig, nil and
// unknown conditions are never owned.
func OwnedBy(c Condition, addr types.UnlockHash, clock types.Clock) Ownership {
	switch c := c.(type) {
	case UnlockHashCondition:
		if c.UnlockHash == addr {
			return OwnedUnlocked
		}
	case TimeLockCondition:
		inner, ok := c.Condition.(UnlockHashCondition)
		if !ok || inner.UnlockHash != addr {
			return NotOwned
		}
		if clock.Reached(c.LockTime) {
			return OwnedUnlocked
		}
		return OwnedLocked
	}
	return NotOwned
}

// IsOwnedBy reports whether addr can spend an output guarded by c right now.
func IsOwnedBy(c Condition, addr types.UnlockHash, clock types.Clock) bool {
	return OwnedBy(c, addr, clock) == OwnedUnlocked
}

// OwnedByForSend reports whether c pays to addr regardless of maturity.
// It is used to decide which pending transactions concern the wallet.
func OwnedByForSend(c Condition, addr types.UnlockHash) bool {
	switch c := c.(type) {
	case UnlockHashCondition:
		return c.UnlockHash == addr
	case TimeLockCondition:
		inner, ok := c.Condition.(UnlockHashCondition)
		return ok && inner.UnlockHash == addr
	default:
		return false
	}
}

// ConditionUnlockHash returns the address an output pays to, if the
// condition resolves to a single address.
func ConditionUnlockHash(c Condition) (types.UnlockHash, bool) {
	switch c := c.(type) {
	case UnlockHashCondition:
		return c.UnlockHash, true
	case TimeLockCondition:
		return ConditionUnlockHash(c.Condition)
	default:
		return types.UnlockHash{}, false
	}
}
