package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

func TestClockVictim(t *testing.T) {
	t.Run("InvalidFastPath", func(t *testing.T) {
		table := newDescTable(3)
		c := NewClockReplacer(table)

		// all frames invalid: the sweep hands them out in clock order
		for _, want := range []int{0, 1, 2, 0} {
			frame, err := c.Victim()
			require.NoError(t, err)
			assert.Equal(t, want, frame)
		}
	})

	t.Run("SecondChance", func(t *testing.T) {
		store := newMemStore("a.dat", 3)
		table := newDescTable(3)
		c := NewClockReplacer(table)

		// all valid, unpinned, referenced
		for i := 0; i < 3; i++ {
			table.set(i, store, util.PageID(i))
			table.get(i).pinCount = 0
		}

		frame, err := c.Victim()
		require.NoError(t, err)
		assert.Equal(t, 0, frame, "first full pass only clears reference bits")

		for i := 0; i < 3; i++ {
			assert.False(t, table.get(i).referenced, "frame %d lost its second chance", i)
		}
	})

	t.Run("ReferencedFrameSurvivesOnePass", func(t *testing.T) {
		store := newMemStore("a.dat", 3)
		table := newDescTable(3)
		c := NewClockReplacer(table)

		// frame 0 resident and recently used; 1 and 2 empty
		table.set(0, store, 7)
		table.get(0).pinCount = 0

		frame, err := c.Victim()
		require.NoError(t, err)
		assert.Equal(t, 1, frame, "referenced frame is passed over")
		assert.False(t, table.get(0).referenced, "but its bit is spent")
	})

	t.Run("SkipsPinned", func(t *testing.T) {
		store := newMemStore("a.dat", 3)
		table := newDescTable(3)
		c := NewClockReplacer(table)

		for i := 0; i < 3; i++ {
			table.set(i, store, util.PageID(i))
			table.get(i).referenced = false
		}
		table.get(1).pinCount = 0 // only frame 1 is evictable

		frame, err := c.Victim()
		require.NoError(t, err)
		assert.Equal(t, 1, frame)
	})

	t.Run("ExhaustedWhenAllPinned", func(t *testing.T) {
		store := newMemStore("a.dat", 4)
		table := newDescTable(4)
		c := NewClockReplacer(table)

		for i := 0; i < 4; i++ {
			table.set(i, store, util.PageID(i)) // pinCount 1, referenced
		}

		_, err := c.Victim()
		assert.ErrorIs(t, err, util.ErrPoolExhausted, "sweep must fail instead of spinning")

		_, err = c.Victim()
		assert.ErrorIs(t, err, util.ErrPoolExhausted, "and keeps failing while pins are held")
	})

	t.Run("HandPersistsAcrossCalls", func(t *testing.T) {
		table := newDescTable(4)
		c := NewClockReplacer(table)

		a, err := c.Victim()
		require.NoError(t, err)
		b, err := c.Victim()
		require.NoError(t, err)
		assert.NotEqual(t, a, b, "hand is not reset between sweeps")
	})

	t.Run("Size", func(t *testing.T) {
		store := newMemStore("a.dat", 3)
		table := newDescTable(3)
		c := NewClockReplacer(table)
		assert.Equal(t, 3, c.Size(), "empty frames are victimizable")

		table.set(0, store, 0)
		assert.Equal(t, 2, c.Size(), "pinned frame is not")

		table.get(0).pinCount = 0
		assert.Equal(t, 3, c.Size())
	})
}
