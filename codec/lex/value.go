package lex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Value is a value of the sortable value model.
// The set of implementations is closed: Null, Bool, Number, Text and Sequence.
type Value interface {
	Kind() Kind
	fmt.Stringer

	sealed()
}

// Null is the absence of a value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Number is an exact decimal number.
type Number struct {
	decimal.Decimal
}

// Text is a string value.
type Text string

// Sequence is an ordered list of values.
type Sequence []Value

// Kind implements the Value interface.
func (Null) Kind() Kind { return NullKind }

// Kind implements the Value interface.
func (Bool) Kind() Kind { return BoolKind }

// Kind implements the Value interface.
func (Number) Kind() Kind { return NumberKind }

// Kind implements the Value interface.
func (Text) Kind() Kind { return TextKind }

// Kind implements the Value interface.
func (Sequence) Kind() Kind { return SequenceKind }

func (Null) sealed()     {}
func (Bool) sealed()     {}
func (Number) sealed()   {}
func (Text) sealed()     {}
func (Sequence) sealed() {}

func (Null) String() string { return "null" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (t Text) String() string { return strconv.Quote(string(t)) }

func (s Sequence) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// NewNumber wraps the given decimal as a Number.
func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

// Int returns the Number of the given integer.
func Int[T constraints.Signed](v T) Number {
	return Number{Decimal: decimal.NewFromInt(int64(v))}
}

// ParseDecimal parses a decimal string to a Number.
func ParseDecimal(s string) (Number, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, fmt.Errorf("failed to parse number %q: %w", s, err)
	}
	return Number{Decimal: d}, nil
}

// MustParseDecimal is like ParseDecimal but panics if there is an error.
func MustParseDecimal(s string) Number {
	n, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Seq builds a sequence of the given values.
func Seq(vs ...Value) Sequence {
	if vs == nil {
		return Sequence{}
	}
	return Sequence(vs)
}

// Encode returns the sort key of the given value. Sequence elements are encoded first.
func Encode(v Value) (Key, error) {
	switch v := v.(type) {
	case nil, Null:
		return EncodeNull(), nil
	case Bool:
		return EncodeBool(bool(v)), nil
	case Number:
		return EncodeDecimal(v.Decimal)
	case Text:
		return EncodeText(string(v))
	case Sequence:
		elems := make([]Key, len(v))
		for i, e := range v {
			k, err := Encode(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = k
		}
		return EncodeSequence(elems), nil
	default:
		return nil, fmt.Errorf("%w %T", ErrUnsupportedType, v)
	}
}

// MustEncode is like Encode but panics if there is an error.
func MustEncode(v Value) Key {
	k, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return k
}
