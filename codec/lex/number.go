package lex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// EncodeNumber returns the sort key of the number made of the given sign and decimal digit strings.
// Leading zeros of the integral part and trailing zeros of the fractional part are dropped.
func EncodeNumber(negative bool, integral, fractional string) (Key, error) {
	if err := checkDigits(integral); err != nil {
		return nil, fmt.Errorf("integral part: %w", err)
	}
	if err := checkDigits(fractional); err != nil {
		return nil, fmt.Errorf("fractional part: %w", err)
	}
	if len(integral) == 0 {
		return nil, fmt.Errorf("%w: empty integral part", ErrDigitOverflow)
	}

	integral = strings.TrimLeft(integral, "0")
	if integral == "" {
		integral = "0"
	}
	fractional = strings.TrimRight(fractional, "0")
	if len(integral) > MaxDigits {
		return nil, fmt.Errorf("%w: %d integral digits exceed %d", ErrDigitOverflow, len(integral), MaxDigits)
	}
	if integral == "0" && fractional == "" {
		negative = false
	}

	if !negative {
		k := make(Key, 0, 1+len(integral)+len(fractional))
		k = append(k, positivePrefix(len(integral)))
		k = append(k, integral...)
		return append(k, fractional...), nil
	}

	k := make(Key, 0, 2+len(integral)+len(fractional))
	k = append(k, negativePrefix(len(integral)))
	k = appendComplement(k, integral)
	k = appendComplement(k, fractional)
	return append(k, fractionTerminator), nil
}

func checkDigits(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%w %q at offset %d of digits %q", ErrInvalidCharacter, s[i], i, s)
		}
	}
	return nil
}

func appendComplement(dst []byte, digits string) []byte {
	for i := 0; i < len(digits); i++ {
		dst = append(dst, complementBase-(digits[i]-'0'))
	}
	return dst
}

// EncodeDecimal returns the sort key of the given decimal.
func EncodeDecimal(d decimal.Decimal) (Key, error) {
	integral, fractional := splitDecimal(d)
	return EncodeNumber(d.Sign() < 0, integral, fractional)
}

// splitDecimal returns the integral and fractional digits of the absolute value of d.
func splitDecimal(d decimal.Decimal) (string, string) {
	s := strings.TrimPrefix(d.String(), "-")
	integral, fractional, _ := strings.Cut(s, ".")
	return integral, fractional
}

// EncodeInteger returns the sort key of the given integer.
func EncodeInteger[T constraints.Integer](v T) Key {
	var k Key
	var err error
	if v < 0 {
		// Negating the unsigned form avoids overflowing on the minimum value.
		k, err = EncodeNumber(true, strconv.FormatUint(-uint64(v), 10), "")
	} else {
		k, err = EncodeNumber(false, strconv.FormatUint(uint64(v), 10), "")
	}
	if err != nil {
		panic(err)
	}
	return k
}

// ParseNumber parses a decimal string such as "-12.5" and returns its sort key.
func ParseNumber(s string) (Key, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse number %q: %w", s, err)
	}
	return EncodeDecimal(d)
}
