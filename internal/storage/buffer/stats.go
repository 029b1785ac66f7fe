package buffer

import (
	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

// FrameInfo is a point-in-time copy of one frame's descriptor.
type FrameInfo struct {
	Frame      int
	File       string
	PageID     util.PageID
	PinCount   int
	Dirty      bool
	Valid      bool
	Referenced bool
}

// Stats summarizes the pool state.
type Stats struct {
	TotalFrames  int
	ValidFrames  int
	PinnedFrames int
	DirtyFrames  int
}

// Snapshot enumerates every frame's descriptor state. Diagnostic only,
// no side effects.
func (m *Manager) Snapshot() []FrameInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]FrameInfo, m.table.size())
	for frame := 0; frame < m.table.size(); frame++ {
		d := m.table.get(frame)
		infos[frame] = FrameInfo{
			Frame:      frame,
			PageID:     d.pageNo,
			PinCount:   d.pinCount,
			Dirty:      d.dirty,
			Valid:      d.valid,
			Referenced: d.referenced,
		}
		if d.file != nil {
			infos[frame].File = d.file.Name()
		}
	}
	return infos
}

// Stats counts valid, pinned and dirty frames.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{TotalFrames: m.table.size()}
	for frame := 0; frame < m.table.size(); frame++ {
		d := m.table.get(frame)
		if d.valid {
			s.ValidFrames++
		}
		if d.pinCount > 0 {
			s.PinnedFrames++
		}
		if d.dirty {
			s.DirtyFrames++
		}
	}
	return s
}
