package compression

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLZ4RoundTrip(t *testing.T) {
	c, err := Get("lz4")
	require.NoError(t, err)

	random := make([]byte, 256)
	_, err = rand.Read(random)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"repetitive", bytes.Repeat([]byte("preauthorization"), 64)},
		{"incompressible", random},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			packed, err := c.Compress(tc.data)
			require.NoError(t, err)
			out, err := c.Decompress(packed)
			require.NoError(t, err)
			assert.Equal(t, tc.data, out)
		})
	}
}

func TestLZ4Shrinks(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 4096)
	packed, err := (&LZ4Compressor{}).Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(data))
	assert.Equal(t, frameLZ4, packed[0])
}

func TestLZ4CorruptFrame(t *testing.T) {
	c := &LZ4Compressor{}
	_, err := c.Decompress([]byte{7, 1, 0})
	assert.ErrorIs(t, err, ErrCorruptFrame)

	_, err = c.Decompress([]byte{frameRaw, 5, 'a'})
	assert.ErrorIs(t, err, ErrCorruptFrame)
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"lz4", "none"}, Available())
	_, err := Get("zstd")
	assert.Error(t, err)
}
