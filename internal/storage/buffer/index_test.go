package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

func TestPageIndex(t *testing.T) {
	storeA := newMemStore("a.dat", 0)
	storeB := newMemStore("b.dat", 0)

	t.Run("LookupMissIsNotAnError", func(t *testing.T) {
		ix := newPageIndex(4)
		_, ok := ix.lookup(storeA, 9)
		assert.False(t, ok)
	})

	t.Run("InsertThenLookup", func(t *testing.T) {
		ix := newPageIndex(4)
		require.NoError(t, ix.insert(storeA, 3, 1))

		frame, ok := ix.lookup(storeA, 3)
		require.True(t, ok)
		assert.Equal(t, 1, frame)
	})

	t.Run("DuplicateInsertFails", func(t *testing.T) {
		ix := newPageIndex(4)
		require.NoError(t, ix.insert(storeA, 3, 1))

		err := ix.insert(storeA, 3, 2)
		assert.ErrorIs(t, err, util.ErrPageResident, "a page never maps to two frames")
		assert.Equal(t, 1, ix.len())
	})

	t.Run("SamePageNumberDifferentFiles", func(t *testing.T) {
		ix := newPageIndex(4)
		require.NoError(t, ix.insert(storeA, 3, 1))
		require.NoError(t, ix.insert(storeB, 3, 2))

		frame, ok := ix.lookup(storeB, 3)
		require.True(t, ok)
		assert.Equal(t, 2, frame)
	})

	t.Run("RemoveAbsentFails", func(t *testing.T) {
		ix := newPageIndex(4)
		err := ix.remove(storeA, 3)
		assert.ErrorIs(t, err, util.ErrPageNotResident)
	})

	t.Run("RemoveThenMiss", func(t *testing.T) {
		ix := newPageIndex(4)
		require.NoError(t, ix.insert(storeA, 3, 1))
		require.NoError(t, ix.remove(storeA, 3))

		_, ok := ix.lookup(storeA, 3)
		assert.False(t, ok)
		assert.Equal(t, 0, ix.len())
	})
}
