package lex

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Key is a sort key. Byte-wise comparison of two keys orders them as their source values.
type Key []byte

// Compare compares two keys byte-wise.
func (k Key) Compare(other Key) int {
	return bytes.Compare(k, other)
}

// Kind returns the kind of the value the key was encoded from.
func (k Key) Kind() Kind {
	if len(k) == 0 {
		return InvalidKind
	}
	return KindOf(k[0])
}

// String returns the hexadecimal representation of the key.
func (k Key) String() string {
	return "0x" + hex.EncodeToString(k)
}

var nullKey = Key{NullPrefix}

// EncodeNull returns the sort key of null.
func EncodeNull() Key {
	return bytes.Clone(nullKey)
}

// EncodeBool returns the sort key of the given boolean.
func EncodeBool(b bool) Key {
	if b {
		return Key{BoolPrefix, '1'}
	}
	return Key{BoolPrefix, '0'}
}

// EncodeText returns the sort key of the given text.
// Bytes 0x00 and 0x01 sort at or below the sequence terminator so they are rejected.
func EncodeText(s string) (Key, error) {
	if i := invalidTextByte(s); i >= 0 {
		return nil, fmt.Errorf("%w 0x%02x at offset %d of text %q", ErrInvalidCharacter, s[i], i, s)
	}

	k := make(Key, 0, len(s)+1)
	k = append(k, TextPrefix)
	return append(k, s...), nil
}

func invalidTextByte(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] <= Terminator {
			return i
		}
	}
	return -1
}

// EncodeSequence returns the sort key of a sequence whose elements are already encoded.
func EncodeSequence(elems []Key) Key {
	n := 1
	for _, e := range elems {
		n += len(e) + 1
	}

	k := make(Key, 0, n)
	k = append(k, SequencePrefix)
	for _, e := range elems {
		k = append(k, e...)
		k = append(k, Terminator)
	}
	return k
}
