// Package money converts between decimal currency amounts and integer minor
// units. Balance arithmetic only ever happens on the integer side.
package money

import (
	"math"
	"regexp"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	centsPerUnit = decimal.NewFromInt(100)
	maxCents     = decimal.NewFromInt(math.MaxInt64)
	minCents     = decimal.NewFromInt(math.MinInt64)
)

// amountPattern admits plain decimal notation only. Exponent forms like
// "1e300000000" would make Round allocate a power of ten that large.
var amountPattern = regexp.MustCompile(`^-?\d{1,17}(\.\d{1,20})?$`)

// maxExponent bounds the scale AmountToCents will rescale through.
const maxExponent = 18

// ErrOutOfRange is returned when an amount does not fit in int64 cents.
var ErrOutOfRange = errors.New("money: amount out of range")

// AmountToCents rounds amount to the nearest cent, halves away from zero.
func AmountToCents(amount decimal.Decimal) (int64, error) {
	if !amount.IsZero() && amount.Exponent() > maxExponent {
		return 0, ErrOutOfRange
	}
	cents := amount.Mul(centsPerUnit).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, ErrOutOfRange
	}
	return cents.IntPart(), nil
}

// ParseCents parses a decimal string such as "19.99" into cents. Only an
// optional minus sign, up to 17 integer digits and up to 20 fractional
// digits are accepted.
func ParseCents(amount string) (int64, error) {
	if !amountPattern.MatchString(amount) {
		return 0, errors.Errorf("money: invalid amount %q", amount)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, errors.Wrapf(err, "money: invalid amount %q", amount)
	}
	return AmountToCents(d)
}

// CentsToAmount is for display only.
func CentsToAmount(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents renders cents with exactly two fractional digits.
func FormatCents(cents int64) string {
	return CentsToAmount(cents).StringFixed(2)
}
