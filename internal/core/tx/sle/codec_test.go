package sle

import (
	"testing"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugorji/go/codec"
)

func TestPreauthorizationEncoding(t *testing.T) {
	holder := randomAccountID(t)
	asset := Asset{Code: "USD", Issuer: randomAccountID(t)}

	p := &PreauthorizationEntry{
		AccountID: holder,
		Asset:     asset,
		Flags:     entry.Authorized,
		Reserve:   5_000_000,
	}
	data, err := SerializePreauthorization(p)
	require.NoError(t, err)

	typ, err := EntryType(data)
	require.NoError(t, err)
	assert.Equal(t, entry.TypePreauthorization, typ)

	back, err := ParsePreauthorization(data)
	require.NoError(t, err)
	assert.Equal(t, p, back)
	assert.Equal(t, p.Key(), back.Key())
}

func TestParseRejectsSiblingType(t *testing.T) {
	tl := &TrustLineEntry{
		AccountID: randomAccountID(t),
		Asset:     Asset{Code: "EURT", Issuer: randomAccountID(t)},
		Limit:     100,
		Flags:     entry.Authorized,
	}
	data, err := SerializeTrustLine(tl)
	require.NoError(t, err)

	_, err = ParsePreauthorization(data)
	assert.ErrorIs(t, err, ErrUnexpectedEntryType)

	parsed, err := ParseAuthorizable(data)
	require.NoError(t, err)
	assert.Equal(t, tl.Key(), parsed.Key())
	assert.Equal(t, entry.Authorized, parsed.AuthFlags())
}

func TestEncodedEntryKeepsTypeHeader(t *testing.T) {
	tests := []struct {
		name      string
		serialize func() ([]byte, error)
		want      entry.Type
	}{
		{"account", func() ([]byte, error) {
			return SerializeAccount(&AccountEntry{AccountID: randomAccountID(t), Balance: 100})
		}, entry.TypeAccount},
		{"trust line", func() ([]byte, error) {
			return SerializeTrustLine(&TrustLineEntry{AccountID: randomAccountID(t), Asset: Asset{Code: "USD", Issuer: randomAccountID(t)}})
		}, entry.TypeTrustLine},
		{"preauthorization", func() ([]byte, error) {
			return SerializePreauthorization(&PreauthorizationEntry{AccountID: randomAccountID(t), Asset: Asset{Code: "USD", Issuer: randomAccountID(t)}})
		}, entry.TypePreauthorization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.serialize()
			require.NoError(t, err)
			require.Greater(t, len(data), entryHeaderLen)
			assert.Equal(t, byte(tt.want>>8), data[0])
			assert.Equal(t, byte(tt.want), data[1])

			// The body after the header is a msgpack map.
			var body map[string]any
			require.NoError(t, codec.NewDecoderBytes(data[entryHeaderLen:], msgpack).Decode(&body))
			assert.Contains(t, body, "account_id")

			key, err := EntryKey(data)
			require.NoError(t, err)
			assert.NotZero(t, key)
		})
	}
}

func TestEntryTypeShortData(t *testing.T) {
	_, err := EntryType([]byte{0})
	assert.ErrorIs(t, err, ErrEntryTooShort)
}

func TestAccountFlags(t *testing.T) {
	a := &AccountEntry{AccountID: randomAccountID(t), Flags: entry.AccountAuthRequired}
	assert.True(t, a.AuthRequired())
	assert.False(t, a.AuthRevocable())

	data, err := SerializeAccount(a)
	require.NoError(t, err)
	back, err := ParseAccount(data)
	require.NoError(t, err)
	assert.Equal(t, a, back)
}
