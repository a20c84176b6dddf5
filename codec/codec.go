package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Codec is an interface for encoding and decoding values.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// Encoder is an interface for encoding values.
type Encoder[T any] interface {
	Encode(v T) ([]byte, error)
}

// Decoder is an interface for decoding values.
type Decoder[T any] interface {
	Decode(bz []byte) (T, error)
}

// Uint32Codec encodes uint32s as 4 big-endian bytes so their byte order matches their numeric order.
type Uint32Codec struct{}

var _ Codec[uint32] = Uint32Codec{}

// Encode encodes the given uint32 to bytes.
func (Uint32Codec) Encode(v uint32) ([]byte, error) {
	return binary.BigEndian.AppendUint32(nil, v), nil
}

// Decode decodes the given bytes to a uint32.
func (Uint32Codec) Decode(bz []byte) (uint32, error) {
	if len(bz) != 4 {
		return 0, fmt.Errorf("invalid uint32 length %d", len(bz))
	}
	return binary.BigEndian.Uint32(bz), nil
}

// JSONCodec is a codec for values serialized as JSON.
// Numbers decoded into interface values are kept as json.Number.
type JSONCodec[T any] struct{}

// Encode encodes the given value to bytes.
func (JSONCodec[T]) Encode(v T) ([]byte, error) {
	return json.Marshal(v)
}

// Decode decodes the given bytes to a value.
func (JSONCodec[T]) Decode(bz []byte) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.UseNumber()
	err := dec.Decode(&v)
	return v, err
}
