package lex

import "bytes"

// Increment increments the given byte slice in place so that it would be the next in lexicographical order
// among slices of the same length. A slice of all 0xff bytes grows by one byte instead.
func Increment(b []byte) []byte {
	for i := len(b) - 1; i >= 0; i-- {
		b[i]++
		if b[i] > 0x00 {
			return b
		}
	}
	return append(bytes.Repeat([]byte{0xff}, len(b)), 0x01)
}
