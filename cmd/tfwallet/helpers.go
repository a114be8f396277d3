package main

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/Klingon-tech/tfwallet/config"
	"github.com/Klingon-tech/tfwallet/internal/explorer"
	"github.com/Klingon-tech/tfwallet/internal/ledger"
	"github.com/Klingon-tech/tfwallet/internal/utxo"
	"github.com/Klingon-tech/tfwallet/internal/wallet"
	"github.com/Klingon-tech/tfwallet/pkg/types"
	"golang.org/x/term"
)

// ── Amounts ─────────────────────────────────────────────────────────────

func formatAmount(v *big.Int, p config.Provider) string {
	return types.FormatCoins(v, p.Precision) + " " + p.Symbol
}

func formatCurrency(c types.Currency, p config.Provider) string {
	return formatAmount(c.Big(), p)
}

func parseAmount(s string, p config.Provider) (types.Currency, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, p.Symbol)
	c, err := types.ParseCoins(strings.TrimSpace(s), p.Precision)
	if err != nil {
		return types.Currency{}, fmt.Errorf("invalid amount: %w", err)
	}
	if c.IsZero() {
		return types.Currency{}, fmt.Errorf("amount must be positive")
	}
	return c, nil
}

// ── Output ──────────────────────────────────────────────────────────────

func printBalance(w io.Writer, b *wallet.Balance, p config.Provider) {
	fmt.Fprintf(w, "Address:     %s\n", b.Address)
	fmt.Fprintf(w, "Height:      %d\n", b.Clock.Height)
	fmt.Fprintf(w, "Confirmed:   %s\n", formatAmount(b.Confirmed.Total(), p))
	if b.Confirmed.Locked.Sign() != 0 {
		fmt.Fprintf(w, "  Locked:    %s\n", formatAmount(b.Confirmed.Locked, p))
	}
	if b.Unconfirmed.Total().Sign() != 0 {
		fmt.Fprintf(w, "Unconfirmed: %s\n", formatAmount(b.Unconfirmed.Total(), p))
	}
	fmt.Fprintf(w, "Total:       %s\n", formatAmount(b.Total(), p))
	fmt.Fprintf(w, "Spendable:   %s (%d outputs)\n", formatCurrency(b.Spendable, p), b.Outputs)
	if !b.FetchedAt.IsZero() {
		fmt.Fprintf(w, "Fetched:     %s\n", b.FetchedAt.Local().Format(time.DateTime))
	}
}

func printHistory(w io.Writer, entries []ledger.HistoryEntry, p config.Provider) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No transactions.")
		return
	}
	for _, e := range entries {
		status := fmt.Sprintf("%d conf", e.Confirmations)
		if e.Unconfirmed {
			status = "unconfirmed"
		}
		sign := ""
		if e.Receiving {
			sign = "+"
		}
		fmt.Fprintf(w, "  %s  height %-8d %-12s %s%s", e.ID, e.Height, status, sign, formatAmount(e.Amount.Total(), p))
		if e.Amount.Locked.Sign() != 0 {
			fmt.Fprintf(w, " (locked %s)", formatAmount(e.Amount.Locked, p))
		}
		if !e.Receiving && !e.MinerFee.IsZero() {
			fmt.Fprintf(w, " fee %s", formatCurrency(e.MinerFee, p))
		}
		fmt.Fprintln(w)
	}
}

func printPending(w io.Writer, pending []ledger.PendingTransaction, p config.Provider) {
	if len(pending) == 0 {
		fmt.Fprintln(w, "No pending transactions.")
		return
	}
	for _, pt := range pending {
		fmt.Fprintf(w, "  v%-3d %s fee %s\n", pt.Transaction.Version(), formatAmount(pt.Amount.Total(), p), formatCurrency(pt.Fee, p))
	}
}

func printOutputs(w io.Writer, set *utxo.Set, p config.Provider) {
	outs := wallet.SortLargestFirst(set.Outputs())
	if len(outs) == 0 {
		fmt.Fprintln(w, "No spendable outputs.")
		return
	}
	for _, o := range outs {
		fmt.Fprintf(w, "  %s  height %-8d %s\n", o.ID, o.Height, formatCurrency(o.Value, p))
	}
	fmt.Fprintf(w, "Total: %s\n", formatCurrency(set.Total(), p))
}

func printUnsigned(w io.Writer, u *wallet.UnsignedTransaction, p config.Provider) {
	fmt.Fprintf(w, "Transaction: %s (v%d)\n", u.Kind, u.Transaction.Version())
	fmt.Fprintf(w, "  Inputs:    %d, %s\n", len(u.Inputs), formatCurrency(u.InputValue(), p))
	for _, o := range u.Outputs {
		switch {
		case o.Change:
			fmt.Fprintf(w, "  Change:    %s -> %s\n", formatCurrency(o.Value, p), o.To)
		case o.ERC20Address != nil:
			fmt.Fprintf(w, "  Convert:   %s -> %s\n", formatCurrency(o.Value, p), o.ERC20Address)
		default:
			fmt.Fprintf(w, "  Pay:       %s -> %s\n", formatCurrency(o.Value, p), o.To)
		}
	}
	if !u.RegistrationFee.IsZero() {
		fmt.Fprintf(w, "  Reg. fee:  %s\n", formatCurrency(u.RegistrationFee, p))
	}
	fmt.Fprintf(w, "  Fee:       %s\n", formatCurrency(u.Fee, p))
}

func printBlock(w io.Writer, b *explorer.Block) {
	fmt.Fprintf(w, "Height:    %d\n", b.Height)
	fmt.Fprintf(w, "ID:        %s\n", b.BlockID)
	fmt.Fprintf(w, "Parent:    %s\n", b.RawBlock.ParentID)
	fmt.Fprintf(w, "Timestamp: %s\n", time.Unix(int64(b.RawBlock.Timestamp), 0).UTC().Format(time.RFC3339))
}

// ── Prompts ─────────────────────────────────────────────────────────────

// confirm asks a yes/no question on w and reads the answer from in.
// Anything but y or yes is a no.
func confirm(in io.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// readNewPassword prompts twice and rejects an empty or mismatched password.
func readNewPassword() ([]byte, error) {
	password, err := readPassword("Enter password: ")
	if err != nil {
		return nil, err
	}
	again, err := readPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer wipe(again)
	if len(password) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}
	if string(password) != string(again) {
		wipe(password)
		return nil, fmt.Errorf("passwords do not match")
	}
	return password, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
