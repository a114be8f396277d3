package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrNegativeCurrency is returned when an operation would produce a negative amount.
var ErrNegativeCurrency = errors.New("negative currency")

// DefaultPrecision is the number of decimal places between one coin and the
// smallest base unit.
const DefaultPrecision = 9

// Currency is an unsigned arbitrary-precision amount of base units.
// The zero value is zero. Values are immutable: every operation returns a new Currency.
type Currency struct {
	i *big.Int
}

// ZeroCurrency is the zero amount.
var ZeroCurrency = Currency{}

// NewCurrency64 creates a currency from a uint64.
func NewCurrency64(v uint64) Currency {
	return Currency{i: new(big.Int).SetUint64(v)}
}

// NewCurrency creates a currency from a big integer. Negative values are rejected.
func NewCurrency(b *big.Int) (Currency, error) {
	if b == nil {
		return Currency{}, nil
	}
	if b.Sign() < 0 {
		return Currency{}, ErrNegativeCurrency
	}
	return Currency{i: new(big.Int).Set(b)}, nil
}

func (c Currency) big() *big.Int {
	if c.i == nil {
		return new(big.Int)
	}
	return c.i
}

// Big returns a copy of the amount as a big integer.
func (c Currency) Big() *big.Int {
	return new(big.Int).Set(c.big())
}

// IsZero returns true if the amount is zero.
func (c Currency) IsZero() bool {
	return c.i == nil || c.i.Sign() == 0
}

// Cmp compares c and y, returning -1, 0 or +1.
func (c Currency) Cmp(y Currency) int {
	return c.big().Cmp(y.big())
}

// Equals reports whether both amounts are equal.
func (c Currency) Equals(y Currency) bool {
	return c.Cmp(y) == 0
}

// Add returns c + y.
func (c Currency) Add(y Currency) Currency {
	return Currency{i: new(big.Int).Add(c.big(), y.big())}
}

// Sub returns c - y, or ErrNegativeCurrency if y > c.
func (c Currency) Sub(y Currency) (Currency, error) {
	if c.Cmp(y) < 0 {
		return Currency{}, fmt.Errorf("%w: %s - %s", ErrNegativeCurrency, c, y)
	}
	return Currency{i: new(big.Int).Sub(c.big(), y.big())}, nil
}

// String returns the amount in base units.
func (c Currency) String() string {
	return c.big().String()
}

// MarshalJSON encodes the amount as a decimal string of base units.
func (c Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts a decimal string or a bare JSON number of base units.
func (c *Currency) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*c = Currency{}
		return nil
	}
	parsed, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCurrency parses a decimal string of base units.
func ParseCurrency(s string) (Currency, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Currency{}, fmt.Errorf("invalid currency %q", s)
	}
	return NewCurrency(b)
}

// ParseCoins parses a human amount such as "12.5" into base units using the
// given precision. More fractional digits than the precision allows is an error.
func ParseCoins(s string, precision int) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Currency{}, fmt.Errorf("empty amount")
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > precision {
		return Currency{}, fmt.Errorf("amount %q has more than %d decimals", s, precision)
	}
	if whole == "" {
		whole = "0"
	}
	frac += strings.Repeat("0", precision-len(frac))
	return ParseCurrency(whole + frac)
}

// FormatCoins renders the amount as coins with the given precision,
// trimming trailing fractional zeros.
func (c Currency) FormatCoins(precision int) string {
	return FormatCoins(c.big(), precision)
}

// FormatCoins renders a signed amount of base units as coins.
func FormatCoins(v *big.Int, precision int) string {
	neg := v.Sign() < 0
	digits := new(big.Int).Abs(v).String()
	if len(digits) <= precision {
		digits = strings.Repeat("0", precision-len(digits)+1) + digits
	}
	whole := digits[:len(digits)-precision]
	frac := strings.TrimRight(digits[len(digits)-precision:], "0")
	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
