package tx

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/tfwallet/pkg/types"
)

// Validation errors.
var (
	ErrNoInputs       = errors.New("transaction has no inputs")
	ErrNoOutputs      = errors.New("transaction has no outputs")
	ErrDuplicateInput = errors.New("duplicate input")
	ErrZeroOutput     = errors.New("output value is zero")
	ErrNoFee          = errors.New("transaction fee is zero")
	ErrUnbalanced     = errors.New("inputs do not cover outputs and fees")
)

// Validate checks the structure of a transaction the wallet is about to
// sign. It does not look at signatures or at the ledger.
func Validate(t Transaction) error {
	switch t := t.(type) {
	case *TransactionV1:
		if len(t.CoinOutputs) == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidTransaction, ErrNoOutputs)
		}
		if len(t.MinerFees) == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidTransaction, ErrNoFee)
		}
	case *ERC20Conversion:
		if t.Value.IsZero() {
			return fmt.Errorf("%w: conversion value: %w", ErrInvalidTransaction, ErrZeroOutput)
		}
		if t.TransactionFee.IsZero() {
			return fmt.Errorf("%w: %w", ErrInvalidTransaction, ErrNoFee)
		}
	case *ERC20AddressRegistration:
		if t.PublicKey.IsZero() {
			return fmt.Errorf("%w: registration without public key", ErrInvalidTransaction)
		}
		if t.TransactionFee.IsZero() {
			return fmt.Errorf("%w: %w", ErrInvalidTransaction, ErrNoFee)
		}
	case *ERC20CoinCreation, *TransactionV0:
		return fmt.Errorf("%w: version %d is not built by the wallet", ErrInvalidTransaction, t.Version())
	default:
		return fmt.Errorf("validate %T: %w", t, ErrUnknownVersion)
	}

	if len(t.Inputs()) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, ErrNoInputs)
	}
	seen := make(map[types.OutputID]struct{}, len(t.Inputs()))
	for i, in := range t.Inputs() {
		if _, dup := seen[in.ParentID]; dup {
			return fmt.Errorf("%w: input %d: %w", ErrInvalidTransaction, i, ErrDuplicateInput)
		}
		seen[in.ParentID] = struct{}{}
	}
	for i, o := range t.Outputs() {
		if o.Value.IsZero() {
			return fmt.Errorf("%w: output %d: %w", ErrInvalidTransaction, i, ErrZeroOutput)
		}
	}
	return nil
}

// CheckConservation verifies that inputValue, the total value of the
// outputs spent by t, covers its outputs and fees.
func CheckConservation(t Transaction, inputValue types.Currency) error {
	spent := TotalOutputs(t).Add(TotalFees(t))
	if inputValue.Cmp(spent) < 0 {
		return fmt.Errorf("%w: %w: inputs %s, outputs and fees %s",
			ErrInvalidTransaction, ErrUnbalanced, inputValue, spent)
	}
	return nil
}
