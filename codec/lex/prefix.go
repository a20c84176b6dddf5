package lex

// Terminator delimits the elements of an encoded sequence. It sorts below every prefix byte.
const Terminator byte = 0x01

// Prefix bytes tagging the type of an encoded value.
const (
	NullPrefix byte = 0x02
	BoolPrefix byte = 0x03

	// NumberLowerReserved is kept free below the negative number range.
	NumberLowerReserved byte = 0x04
	// NegativeNumberStart is the prefix of negative numbers with MaxDigits integral digits.
	NegativeNumberStart byte = 0x05
	// NumberMid is the prefix of non-negative numbers with a single integral digit.
	NumberMid byte = 0x40
	// NumberEnd is the prefix of positive numbers with MaxDigits integral digits.
	NumberEnd byte = 0x7a
	// NumberUpperReserved is kept free above the positive number range.
	NumberUpperReserved byte = 0x7b

	TextPrefix     byte = 0x7c
	SequencePrefix byte = 0x7d

	// MapPrefix is reserved for associative values which have no defined order.
	MapPrefix      byte = 0x7e
	ReservedPrefix byte = 0x7f
)

// MaxDigits is the maximum number of integral digits a number can have.
const MaxDigits = int(NumberEnd-NumberMid) + 1

const (
	// complementBase minus a digit value gives the complemented digit character.
	complementBase = ':'
	// fractionTerminator ends negative numbers and sorts after every complemented digit.
	fractionTerminator = ';'
)

func positivePrefix(digits int) byte {
	return NumberMid + byte(digits) - 1
}

func negativePrefix(digits int) byte {
	return NumberMid - byte(digits)
}

// Kind is the type of a value as reflected by the prefix byte of its key.
type Kind uint8

const (
	InvalidKind Kind = iota
	NullKind
	BoolKind
	NumberKind
	TextKind
	SequenceKind
)

var kindNames = [...]string{
	InvalidKind:  "invalid",
	NullKind:     "null",
	BoolKind:     "bool",
	NumberKind:   "number",
	TextKind:     "text",
	SequenceKind: "sequence",
}

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[InvalidKind]
}

// KindOf classifies the given prefix byte.
func KindOf(prefix byte) Kind {
	switch {
	case prefix == NullPrefix:
		return NullKind
	case prefix == BoolPrefix:
		return BoolKind
	case prefix >= NegativeNumberStart && prefix <= NumberEnd:
		return NumberKind
	case prefix == TextPrefix:
		return TextKind
	case prefix == SequencePrefix:
		return SequenceKind
	default:
		return InvalidKind
	}
}
