package royalty

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStateStore_ReturnsCopies(t *testing.T) {
	s := NewMemStateStore()
	id := uuid.New()
	state := &AssetState{Config: validConfig(), OwnerCount: 1, Window: []Address{makeAddr(1)}, Initialized: true}
	require.NoError(t, s.Put(id, state))

	// Mutating the caller's record or a fetched record must not leak into
	// the store.
	state.OwnerCount = 99
	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.OwnerCount)

	got.ShiftWindow(makeAddr(2))
	again, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []Address{makeAddr(1)}, again.Window)
}

func TestMemStateStore_DeleteAndList(t *testing.T) {
	s := NewMemStateStore()
	id := uuid.New()
	require.NoError(t, s.Put(id, &AssetState{Config: validConfig(), Window: []Address{makeAddr(1)}}))

	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []AssetID{id}, ids)

	require.NoError(t, s.Delete(id))
	assert.ErrorIs(t, s.Delete(id), ErrAssetNotFound)
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestMemStateStore_PutNil(t *testing.T) {
	s := NewMemStateStore()
	assert.ErrorIs(t, s.Put(uuid.New(), nil), ErrNilParam)
}
