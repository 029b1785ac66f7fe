package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bietkhonhungvandi212/buffer-db/internal/storage/file"
	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

// End-to-end over a real data file: the manager in front of a FileStore.
func TestManagerWithFileStore(t *testing.T) {
	path, cleanup := util.CreateTempFile(t)
	defer cleanup()

	store, err := file.NewFileStore(path, false)
	require.NoError(t, err)
	defer store.Close()

	m := NewManager(2)

	// create three pages through the cache, more than the pool holds
	var ids []util.PageID
	for i := 0; i < 3; i++ {
		p, err := m.NewPage(store)
		require.NoError(t, err)
		p.Data[0] = byte('a' + i)
		ids = append(ids, p.Header.PageID)
		require.NoError(t, m.UnpinPage(store, p.Header.PageID, true))
	}

	// everything must survive eviction pressure and a full flush
	require.NoError(t, m.FlushFile(store))
	assert.Equal(t, 0, m.Stats().ValidFrames)

	for i, id := range ids {
		p, err := m.FetchPage(store, id)
		require.NoError(t, err)
		assert.Equal(t, byte('a'+i), p.Data[0], "page %d kept its payload", id)
		require.NoError(t, m.UnpinPage(store, id, false))
	}

	// dispose one page; the store forgets it
	require.NoError(t, m.DisposePage(store, ids[1]))
	_, err = store.ReadPage(ids[1])
	assert.ErrorIs(t, err, util.ErrPageDeleted)

	require.NoError(t, m.Close())
}
