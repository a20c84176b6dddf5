package expr

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Range represents a range of values of a sequential type. A nil bound leaves that side open.
type Range[T any] struct {
	low  *Bound[T]
	high *Bound[T]
}

// NewRange creates a new range lookup expression.
func NewRange[T any](low, high *Bound[T]) Range[T] {
	return Range[T]{low: low, high: high}
}

// All returns the range that is open on both sides.
func All[T any]() Range[T] { return Range[T]{} }

// Exact returns the range containing only v.
func Exact[T any](v T) Range[T] {
	return NewRange(NewBound(v, false), NewBound(v, false))
}

// AtLeast returns the range of values greater than or equal to v.
func AtLeast[T any](v T) Range[T] { return NewRange(NewBound(v, false), nil) }

// GreaterThan returns the range of values strictly greater than v.
func GreaterThan[T any](v T) Range[T] { return NewRange(NewBound(v, true), nil) }

// AtMost returns the range of values less than or equal to v.
func AtMost[T any](v T) Range[T] { return NewRange(nil, NewBound(v, false)) }

// LessThan returns the range of values strictly less than v.
func LessThan[T any](v T) Range[T] { return NewRange(nil, NewBound(v, true)) }

// Low returns the low bound of the range.
func (r Range[T]) Low() *Bound[T] { return r.low }

// High returns the high bound of the range.
func (r Range[T]) High() *Bound[T] { return r.high }

// Contains reports whether v lies within the range according to cmp.
func (r Range[T]) Contains(v T, cmp func(a, b T) int) bool {
	if !r.low.IsEmpty() {
		c := cmp(v, r.low.Value())
		if c < 0 || (c == 0 && r.low.Exclusive()) {
			return false
		}
	}
	if !r.high.IsEmpty() {
		c := cmp(v, r.high.Value())
		if c > 0 || (c == 0 && r.high.Exclusive()) {
			return false
		}
	}
	return true
}

// Map converts the bounds of the range with f.
func Map[T, U any](r Range[T], f func(T) (U, error)) (Range[U], error) {
	low, err := mapBound(r.low, f)
	if err != nil {
		return Range[U]{}, fmt.Errorf("low bound: %w", err)
	}
	high, err := mapBound(r.high, f)
	if err != nil {
		return Range[U]{}, fmt.Errorf("high bound: %w", err)
	}
	return NewRange(low, high), nil
}

func mapBound[T, U any](b *Bound[T], f func(T) (U, error)) (*Bound[U], error) {
	if b.IsEmpty() {
		return nil, nil
	}
	u, err := f(b.Value())
	if err != nil {
		return nil, err
	}
	return NewBound(u, b.Exclusive()), nil
}

// String returns the string representation of the range.
func (r Range[T]) String() string {
	var sb strings.Builder
	if r.Low().Exclusive() {
		sb.WriteString("(")
	} else {
		sb.WriteString("[")
	}
	sb.WriteString(r.encodeBound(r.Low(), true))
	sb.WriteString(", ")
	sb.WriteString(r.encodeBound(r.High(), false))
	if r.High().IsEmpty() || r.High().Exclusive() {
		sb.WriteString(")")
	} else {
		sb.WriteString("]")
	}
	return sb.String()
}

func (r Range[T]) encodeBound(b *Bound[T], low bool) string {
	if b.IsEmpty() {
		if low {
			return "-∞"
		}
		return "∞"
	}

	switch v := any(b.Value()).(type) {
	case []byte:
		return "0x" + hex.EncodeToString(v)
	default:
		return fmt.Sprint(v)
	}
}

// Bound represents a bound. either exclusive or inclusive.
type Bound[T any] struct {
	value     T
	exclusive bool
}

// NewBound creates a new bound.
func NewBound[T any](value T, exclusive bool) *Bound[T] {
	return &Bound[T]{value: value, exclusive: exclusive}
}

// Value returns the value of the bound.
func (b Bound[T]) Value() T { return b.value }

// Exclusive returns true if the bound is exclusive.
func (b *Bound[T]) Exclusive() bool { return b != nil && b.exclusive }

// IsEmpty returns true if the bound is nil.
func (b *Bound[T]) IsEmpty() bool { return b == nil }
