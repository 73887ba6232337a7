// Package codec converts items to and from the bytes persistent backends store.
package codec

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrCorrupt is returned when stored bytes cannot be decoded.
var ErrCorrupt = errors.New("codec: corrupt payload")

// Codec encodes items of type T.
type Codec[T any] interface {
	Encode(item T) ([]byte, error)
	Decode(data []byte) (T, error)
}

type stringCodec struct{}

// String returns the identity codec for string items.
func String() Codec[string] {
	return stringCodec{}
}

func (stringCodec) Encode(item string) ([]byte, error) {
	return []byte(item), nil
}

func (stringCodec) Decode(data []byte) (string, error) {
	return string(data), nil
}

type jsonCodec[T any] struct{}

// JSON returns a codec storing items as JSON documents.
func JSON[T any]() Codec[T] {
	return jsonCodec[T]{}
}

func (jsonCodec[T]) Encode(item T) ([]byte, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("codec: encode json: %w", err)
	}
	return data, nil
}

func (jsonCodec[T]) Decode(data []byte) (T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return item, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return item, nil
}
