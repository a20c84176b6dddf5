package lex

import "errors"

var (
	// ErrInvalidCharacter is returned when a digit string contains a byte other than '0' to '9',
	// or when a text contains byte 0x01 (the sequence terminator) or byte 0x00, which would
	// sort below the terminator inside a sequence.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrDigitOverflow is returned when a number has no integral digits or more than MaxDigits of them.
	ErrDigitOverflow = errors.New("digit overflow")
	// ErrUnsupportedType is returned when a Go value has no counterpart in the value model.
	ErrUnsupportedType = errors.New("unsupported type")
)
