package lex

import (
	"cmp"
	"strings"
)

// Compare compares two values by their natural order.
// Values of different kinds order as null < bool < number < text < sequence.
// A nil Value compares as Null.
func Compare(a, b Value) int {
	ka, kb := kindOfValue(a), kindOfValue(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}

	switch ka {
	case BoolKind:
		return compareBool(bool(a.(Bool)), bool(b.(Bool)))
	case NumberKind:
		return a.(Number).Cmp(b.(Number).Decimal)
	case TextKind:
		return strings.Compare(string(a.(Text)), string(b.(Text)))
	case SequenceKind:
		sa, sb := a.(Sequence), b.(Sequence)
		for i := 0; i < len(sa) && i < len(sb); i++ {
			if c := Compare(sa[i], sb[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(sa), len(sb))
	default:
		return 0
	}
}

func kindOfValue(v Value) Kind {
	if v == nil {
		return NullKind
	}
	return v.Kind()
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}
