package sle

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/ugorji/go/codec"
)

// ErrEntryTooShort is returned when serialized entry data has no type header.
var ErrEntryTooShort = errors.New("entry data too short")

// ErrUnexpectedEntryType is returned when data decodes to a different
// entry type than requested.
var ErrUnexpectedEntryType = errors.New("unexpected ledger entry type")

const entryHeaderLen = 2

// msgpack is shared by all entry codecs. Handles are safe for concurrent
// use once configured.
var msgpack = &codec.MsgpackHandle{}

// encodeEntry writes the 2-byte big-endian entry type followed by the
// msgpack-encoded body. The encoder truncates the slice it is given, so
// the body is encoded separately and appended after the header.
func encodeEntry(t entry.Type, body any) ([]byte, error) {
	var encoded []byte
	if err := codec.NewEncoderBytes(&encoded, msgpack).Encode(body); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	buf := make([]byte, entryHeaderLen, entryHeaderLen+len(encoded))
	binary.BigEndian.PutUint16(buf, uint16(t))
	return append(buf, encoded...), nil
}

// decodeEntry checks the header against want and decodes the body into out.
func decodeEntry(data []byte, want entry.Type, out any) error {
	got, err := EntryType(data)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: have %s, want %s", ErrUnexpectedEntryType, got, want)
	}
	if err := codec.NewDecoderBytes(data[entryHeaderLen:], msgpack).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", want, err)
	}
	return nil
}

// EntryType returns the ledger entry type of serialized entry data.
func EntryType(data []byte) (entry.Type, error) {
	if len(data) < entryHeaderLen {
		return 0, ErrEntryTooShort
	}
	return entry.Type(binary.BigEndian.Uint16(data[:entryHeaderLen])), nil
}

func toAccountID(b []byte) (AccountID, error) {
	var id AccountID
	if len(b) != len(id) {
		return id, fmt.Errorf("%w: %d bytes", ErrInvalidAccountID, len(b))
	}
	copy(id[:], b)
	return id, nil
}

type assetWire struct {
	Code   string `codec:"code"`
	Issuer []byte `codec:"issuer"`
}

func (a Asset) wire() assetWire {
	return assetWire{Code: a.Code, Issuer: a.Issuer[:]}
}

func (w assetWire) asset() (Asset, error) {
	issuer, err := toAccountID(w.Issuer)
	if err != nil {
		return Asset{}, err
	}
	return Asset{Code: w.Code, Issuer: issuer}, nil
}
