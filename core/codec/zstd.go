package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Payloads shorter than this are stored raw.
const compressThreshold = 128

const (
	frameRaw  byte = 0
	frameZstd byte = 1
)

type zstdCodec[T any] struct {
	inner   Codec[T]
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Zstd wraps inner with zstd compression. Level 1 is fastest, 3 compresses best;
// anything else selects the default speed. Every payload carries a one byte header
// telling raw and compressed frames apart.
func Zstd[T any](inner Codec[T], level int) (Codec[T], error) {
	var encoderLevel zstd.EncoderLevel
	switch level {
	case 1:
		encoderLevel = zstd.SpeedFastest
	case 3:
		encoderLevel = zstd.SpeedBetterCompression
	default:
		encoderLevel = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(encoderLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("codec: create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("codec: create zstd decoder: %w", err)
	}

	return &zstdCodec[T]{inner: inner, encoder: encoder, decoder: decoder}, nil
}

func (c *zstdCodec[T]) Encode(item T) ([]byte, error) {
	data, err := c.inner.Encode(item)
	if err != nil {
		return nil, err
	}

	if len(data) >= compressThreshold {
		out := make([]byte, 1, len(data)+1)
		out[0] = frameZstd
		out = c.encoder.EncodeAll(data, out)
		if len(out) < len(data)+1 {
			return out, nil
		}
	}

	out := make([]byte, 0, len(data)+1)
	out = append(out, frameRaw)
	return append(out, data...), nil
}

func (c *zstdCodec[T]) Decode(data []byte) (T, error) {
	var zero T
	if len(data) == 0 {
		return zero, fmt.Errorf("%w: missing frame header", ErrCorrupt)
	}

	payload := data[1:]
	switch data[0] {
	case frameRaw:
	case frameZstd:
		decoded, err := c.decoder.DecodeAll(payload, nil)
		if err != nil {
			return zero, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		payload = decoded
	default:
		return zero, fmt.Errorf("%w: unknown frame header %d", ErrCorrupt, data[0])
	}

	return c.inner.Decode(payload)
}
