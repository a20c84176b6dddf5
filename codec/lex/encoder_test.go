package lex_test

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/ehsanranjbar/sortkeys/codec/lex"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type celsius float64

func TestValueOf(t *testing.T) {
	id, err := uuid.Parse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	seven := 7
	var nilPtr *int

	tests := []struct {
		name     string
		input    any
		expected lex.Value
	}{
		{"Nil", nil, lex.Null{}},
		{"NilPointer", nilPtr, lex.Null{}},
		{"NilSlice", []int(nil), lex.Null{}},
		{"Bool", true, lex.Bool(true)},
		{"Int", -42, lex.Int(-42)},
		{"Uint64", uint64(math.MaxUint64), lex.MustParseDecimal("18446744073709551615")},
		{"Float64", 1.5, lex.MustParseDecimal("1.5")},
		{"Float32", float32(0.25), lex.MustParseDecimal("0.25")},
		{"NamedFloat", celsius(-3.5), lex.MustParseDecimal("-3.5")},
		{"String", "foo", lex.Text("foo")},
		{"Bytes", []byte("bar"), lex.Text("bar")},
		{"Pointer", &seven, lex.Int(7)},
		{"JSONNumber", json.Number("12345678901234567890.5"), lex.MustParseDecimal("12345678901234567890.5")},
		{"Decimal", decimal.RequireFromString("-0.001"), lex.MustParseDecimal("-0.001")},
		{"BigInt", new(big.Int).Lsh(big.NewInt(1), 100), lex.MustParseDecimal("1267650600228229401496703205376")},
		{"TextMarshaler", id, lex.Text("6ba7b810-9dad-11d1-80b4-00c04fd430c8")},
		{"Value", lex.Text("as is"), lex.Text("as is")},
		{"Slice", []any{1, "a", nil, []int{2}}, lex.Seq(lex.Int(1), lex.Text("a"), lex.Null{}, lex.Seq(lex.Int(2)))},
		{"Array", [2]bool{false, true}, lex.Seq(lex.Bool(false), lex.Bool(true))},
		{"Sequence", lex.Seq(lex.Int(1)), lex.Seq(lex.Int(1))},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := lex.ValueOf(test.input)
			require.NoError(t, err)
			require.Equal(t, test.expected.Kind(), result.Kind())
			require.Equal(t, 0, lex.Compare(test.expected, result), "expected %s, got %s", test.expected, result)
		})
	}
}

func TestValueOfUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"Map", map[string]any{"a": 1}},
		{"NestedMap", []any{map[string]int{}}},
		{"NaN", math.NaN()},
		{"Inf", math.Inf(-1)},
		{"Struct", struct{ A int }{1}},
		{"Chan", make(chan int)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := lex.ValueOf(test.input)
			require.ErrorIs(t, err, lex.ErrUnsupportedType)
		})
	}

	_, err := lex.ValueOf(json.Number("1.2.3"))
	require.Error(t, err)
}

func TestEncoder(t *testing.T) {
	var e lex.Encoder

	k, err := e.Encode([]any{"a", 1, true})
	require.NoError(t, err)
	require.Equal(t, lex.MustEncode(lex.Seq(lex.Text("a"), lex.Int(1), lex.Bool(true))), k)

	require.Equal(t, lex.EncodeInteger(-3), e.MustEncode(int16(-3)))
	require.Equal(t, lex.EncodeNull(), e.MustEncode(nil))

	_, err = e.Encode("bad\x01")
	require.ErrorIs(t, err, lex.ErrInvalidCharacter)

	_, err = e.Encode(math.Inf(1))
	require.ErrorIs(t, err, lex.ErrUnsupportedType)

	require.Panics(t, func() { e.MustEncode(map[int]int{}) })
}
