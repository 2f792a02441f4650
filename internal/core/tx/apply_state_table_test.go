package tx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/keylet"
)

type mapReader map[keylet.Keylet][]byte

func (m mapReader) Read(k keylet.Keylet) ([]byte, error) {
	return m[k], nil
}

func testKey(b byte) keylet.Keylet {
	k := keylet.Keylet{Type: entry.TypePreauthorization}
	k.Key[0] = b
	return k
}

func TestApplyStateTableInsert(t *testing.T) {
	base := mapReader{testKey(1): []byte("one")}
	table := NewApplyStateTable(base)

	require.NoError(t, table.Insert(testKey(2), []byte("two")))
	err := table.Insert(testKey(1), []byte("again"))
	require.True(t, errors.Is(err, ErrEntryExists))
	err = table.Insert(testKey(2), []byte("again"))
	require.True(t, errors.Is(err, ErrEntryExists))

	data, err := table.Read(testKey(2))
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)

	// Base is untouched until commit
	assert.Nil(t, base[testKey(2)])

	changes := table.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, ActionInsert, changes[0].Action)
	assert.Nil(t, changes[0].Before)
}

func TestApplyStateTableUpdate(t *testing.T) {
	base := mapReader{testKey(1): []byte("one")}
	table := NewApplyStateTable(base)

	err := table.Update(testKey(9), []byte("x"))
	require.True(t, errors.Is(err, ErrEntryNotFound))

	require.NoError(t, table.Update(testKey(1), []byte("uno")))
	changes := table.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, ActionModify, changes[0].Action)
	assert.Equal(t, []byte("one"), changes[0].Before)
	assert.Equal(t, []byte("uno"), changes[0].After)

	// Writing the original bytes back is no change at all
	require.NoError(t, table.Update(testKey(1), []byte("one")))
	assert.Empty(t, table.Changes())
}

func TestApplyStateTableErase(t *testing.T) {
	base := mapReader{testKey(1): []byte("one")}
	table := NewApplyStateTable(base)

	require.NoError(t, table.Erase(testKey(1)))
	assert.True(t, table.IsErased(testKey(1)))

	exists, err := table.Exists(testKey(1))
	require.NoError(t, err)
	assert.False(t, exists)

	err = table.Erase(testKey(1))
	require.True(t, errors.Is(err, ErrEntryNotFound))
	err = table.Update(testKey(1), []byte("x"))
	require.True(t, errors.Is(err, ErrEntryNotFound))

	changes := table.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, ActionErase, changes[0].Action)
	assert.Equal(t, []byte("one"), changes[0].Before)
	assert.Nil(t, changes[0].After)

	// Re-inserting an erased entry nets out as a modify
	require.NoError(t, table.Insert(testKey(1), []byte("new")))
	changes = table.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, ActionModify, changes[0].Action)
}

func TestApplyStateTableInsertThenErase(t *testing.T) {
	table := NewApplyStateTable(mapReader{})

	require.NoError(t, table.Insert(testKey(3), []byte("tmp")))
	require.NoError(t, table.Erase(testKey(3)))
	assert.Empty(t, table.Changes())
	assert.Empty(t, table.Metadata().AffectedNodes)
}

func TestApplyStateTableChangesSorted(t *testing.T) {
	table := NewApplyStateTable(mapReader{})
	for _, b := range []byte{9, 3, 7, 1} {
		require.NoError(t, table.Insert(testKey(b), []byte{b}))
	}

	changes := table.Changes()
	require.Len(t, changes, 4)
	for i, want := range []byte{1, 3, 7, 9} {
		assert.Equal(t, want, changes[i].Key.Key[0])
	}

	meta := table.Metadata()
	assert.Equal(t, 4, meta.Count(NodeCreated))
	assert.Equal(t, 0, meta.Count(NodeDeleted))
}

func TestApplyStateTableCachedReadsAreNotChanges(t *testing.T) {
	table := NewApplyStateTable(mapReader{testKey(1): []byte("one")})

	_, err := table.Read(testKey(1))
	require.NoError(t, err)
	_, err = table.Read(testKey(2))
	require.NoError(t, err)
	assert.Empty(t, table.Changes())
}
