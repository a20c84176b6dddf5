package lex_test

import (
	"testing"

	"github.com/ehsanranjbar/sortkeys/codec/lex"
	"github.com/stretchr/testify/require"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		input    []byte
		expected []byte
	}{
		{[]byte{0x00}, []byte{0x01}},
		{[]byte{0x01}, []byte{0x02}},
		{[]byte{0xff}, []byte{0xff, 0x01}},
		{[]byte{0x00, 0xff}, []byte{0x01, 0x00}},
		{[]byte{0xff, 0xff}, []byte{0xff, 0xff, 0x01}},
		{[]byte{lex.TextPrefix, 'a'}, []byte{lex.TextPrefix, 'b'}},
	}

	for _, test := range tests {
		result := lex.Increment(test.input)
		require.Equal(t, test.expected, result, "Increment(%v)", test.input)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		prefix   byte
		expected lex.Kind
	}{
		{lex.Terminator, lex.InvalidKind},
		{lex.NullPrefix, lex.NullKind},
		{lex.BoolPrefix, lex.BoolKind},
		{lex.NumberLowerReserved, lex.InvalidKind},
		{lex.NegativeNumberStart, lex.NumberKind},
		{lex.NumberMid - 1, lex.NumberKind},
		{lex.NumberMid, lex.NumberKind},
		{lex.NumberEnd, lex.NumberKind},
		{lex.NumberUpperReserved, lex.InvalidKind},
		{lex.TextPrefix, lex.TextKind},
		{lex.SequencePrefix, lex.SequenceKind},
		{lex.MapPrefix, lex.InvalidKind},
		{lex.ReservedPrefix, lex.InvalidKind},
	}

	for _, test := range tests {
		require.Equal(t, test.expected, lex.KindOf(test.prefix), "KindOf(0x%02x)", test.prefix)
	}
	require.Equal(t, 59, lex.MaxDigits)
	require.Equal(t, "sequence", lex.SequenceKind.String())
}
