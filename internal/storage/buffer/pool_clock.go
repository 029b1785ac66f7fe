package buffer

import (
	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

// ClockReplacer approximates LRU with a second-chance sweep over the
// descriptor table. One reference bit per frame is the only bookkeeping;
// pinned frames are never selected, so recency precision beyond that is
// not needed for correctness.
type ClockReplacer struct {
	table *descTable
	hand  int // persists across calls so sweeps stay fair over time
}

func NewClockReplacer(table *descTable) *ClockReplacer {
	return &ClockReplacer{
		table: table,
		hand:  table.size() - 1, // first advance lands on frame 0
	}
}

// Victim runs the clock sweep:
//   - invalid frame: reuse it straight away (fast path)
//   - referenced frame: clear the bit, give it a second chance
//   - pinned frame: skip
//   - valid, unreferenced, unpinned: the victim
//
// A full revolution of nothing but pinned frames means no frame can be
// freed; the sweep fails with ErrPoolExhausted instead of spinning.
func (c *ClockReplacer) Victim() (int, error) {
	n := c.table.size()

	pinnedRun := 0
	for pinnedRun < n {
		c.hand = (c.hand + 1) % n
		d := c.table.get(c.hand)

		switch {
		case !d.valid:
			return c.hand, nil
		case d.referenced:
			d.referenced = false
			pinnedRun = 0
		case d.pinCount != 0:
			pinnedRun++
		default:
			return c.hand, nil
		}
	}

	return -1, util.ErrPoolExhausted
}

// Pin is a no-op: the sweep reads pin counts from the descriptors.
func (c *ClockReplacer) Pin(frame int) {}

// Unpin is a no-op for the same reason.
func (c *ClockReplacer) Unpin(frame int) {}

// Release is a no-op: a cleared descriptor is picked up by the
// invalid-frame fast path.
func (c *ClockReplacer) Release(frame int) {}

func (c *ClockReplacer) Size() int {
	victimizable := 0
	for i := 0; i < c.table.size(); i++ {
		d := c.table.get(i)
		if !d.valid || d.pinCount == 0 {
			victimizable++
		}
	}
	return victimizable
}
