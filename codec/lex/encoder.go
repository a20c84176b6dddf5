package lex

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"
)

// Encoder encodes arbitrary Go values lexicographically by first converting them with ValueOf.
type Encoder struct{}

// MustEncode encodes the given value and panics if there is an error.
func (e *Encoder) MustEncode(v any) Key {
	k, err := e.Encode(v)
	if err != nil {
		panic(err)
	}
	return k
}

// Encode encodes the given value.
func (e *Encoder) Encode(v any) (Key, error) {
	lv, err := ValueOf(v)
	if err != nil {
		return nil, err
	}
	return Encode(lv)
}

// ValueOf converts the given Go value to a Value.
//
// Nil values and nil pointers become Null, booleans become Bool, integers, floats,
// json.Number, decimal.Decimal and *big.Int become Number, strings, byte slices and
// encoding.TextMarshaler implementations become Text, and other slices and arrays
// become Sequence. Maps, NaN and infinities are not supported.
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case reflect.Value:
		return valueOfRV(v)
	default:
		return valueOfRV(reflect.ValueOf(v))
	}
}

// MustValueOf is like ValueOf but panics if there is an error.
func MustValueOf(v any) Value {
	lv, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return lv
}

func valueOfRV(v reflect.Value) (Value, error) {
	if !v.IsValid() {
		return Null{}, nil
	}
	if v.CanInterface() {
		lv, ok, err := valueOfKnown(v.Interface())
		if ok {
			return lv, err
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number{Decimal: decimal.NewFromInt(v.Int())}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number{Decimal: decimal.NewFromBigInt(new(big.Int).SetUint64(v.Uint()), 0)}, nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: float %v", ErrUnsupportedType, f)
		}
		if v.Kind() == reflect.Float32 {
			return Number{Decimal: decimal.NewFromFloat32(float32(f))}, nil
		}
		return Number{Decimal: decimal.NewFromFloat(f)}, nil
	case reflect.String:
		return Text(v.String()), nil
	case reflect.Array, reflect.Slice:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return Null{}, nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			return Text(b), nil
		}

		seq := make(Sequence, v.Len())
		for i := 0; i < v.Len(); i++ {
			e, err := valueOfRV(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			seq[i] = e
		}
		return seq, nil
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return Null{}, nil
		}
		return valueOfRV(v.Elem())
	case reflect.Map:
		return nil, fmt.Errorf("%w %s: maps have no defined order", ErrUnsupportedType, v.Type())
	}

	return nil, fmt.Errorf("%w %s", ErrUnsupportedType, v.Type())
}

// valueOfKnown converts types with a dedicated mapping. ok is false for anything else.
func valueOfKnown(v any) (lv Value, ok bool, err error) {
	switch v := v.(type) {
	case Value:
		return v, true, nil
	case decimal.Decimal:
		return Number{Decimal: v}, true, nil
	case json.Number:
		n, err := ParseDecimal(string(v))
		return n, true, err
	case *big.Int:
		if v == nil {
			return Null{}, true, nil
		}
		return Number{Decimal: decimal.NewFromBigInt(v, 0)}, true, nil
	case encoding.TextMarshaler:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Null{}, true, nil
		}
		text, err := v.MarshalText()
		if err != nil {
			return nil, true, fmt.Errorf("failed to marshal %T as text: %w", v, err)
		}
		return Text(text), true, nil
	}

	return nil, false, nil
}
