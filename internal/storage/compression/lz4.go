package compression

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4"
)

// Frame tags written by LZ4Compressor.
const (
	frameRaw byte = 0
	frameLZ4 byte = 1
)

// ErrCorruptFrame is returned when compressed data cannot be decoded.
var ErrCorruptFrame = errors.New("corrupt compressed frame")

// NoCompressor implements a pass-through compressor that doesn't compress data.
type NoCompressor struct{}

// Name returns the name of the compressor.
func (c *NoCompressor) Name() string {
	return "none"
}

// Compress returns a copy of data.
func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

// Decompress returns a copy of data.
func (c *NoCompressor) Decompress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

// LZ4Compressor implements LZ4 block compression. Each value is framed as
// tag, uvarint original length, payload; data LZ4 cannot shrink is stored raw.
type LZ4Compressor struct{}

// Name returns the name of the compressor.
func (c *LZ4Compressor) Name() string {
	return "lz4"
}

// Compress compresses data using LZ4.
func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	header := make([]byte, 1+binary.MaxVarintLen64)
	n := 1 + binary.PutUvarint(header[1:], uint64(len(data)))
	header = header[:n]

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	size, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	// Zero means incompressible
	if size == 0 || size >= len(data) {
		header[0] = frameRaw
		return append(header, data...), nil
	}
	header[0] = frameLZ4
	return append(header, compressed[:size]...), nil
}

// Decompress decompresses LZ4 data.
func (c *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, ErrCorruptFrame
	}
	size, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, ErrCorruptFrame
	}
	payload := data[1+n:]

	switch data[0] {
	case frameRaw:
		if uint64(len(payload)) != size {
			return nil, ErrCorruptFrame
		}
		return append([]byte(nil), payload...), nil
	case frameLZ4:
		out := make([]byte, size)
		got, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(got) != size {
			return nil, ErrCorruptFrame
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: tag %d", ErrCorruptFrame, data[0])
}
