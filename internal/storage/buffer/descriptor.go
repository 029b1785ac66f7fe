package buffer

import (
	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

// frameDesc holds the bookkeeping for one frame of the pool.
// A frame with valid=false carries no page: pinCount is 0, dirty is
// false and file is nil. pinCount>0 implies valid=true.
type frameDesc struct {
	frameNo    int
	file       PageStore
	pageNo     util.PageID
	pinCount   int
	dirty      bool
	valid      bool
	referenced bool
}

// evictable reports whether the clock sweep may select this frame as
// a victim once its reference bit has been cleared.
func (d *frameDesc) evictable() bool {
	return d.valid && d.pinCount == 0
}

// descTable is the per-frame metadata table, parallel to the frame pool.
type descTable struct {
	descs []frameDesc
}

func newDescTable(size int) *descTable {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	t := &descTable{descs: make([]frameDesc, size)}
	for i := range t.descs {
		t.descs[i].frameNo = i
	}
	return t
}

func (t *descTable) size() int {
	return len(t.descs)
}

func (t *descTable) get(frame int) *frameDesc {
	return &t.descs[frame]
}

// set marks a frame resident: pin count starts at exactly 1 and the
// reference bit is set. This is the only place pinCount is initialized.
func (t *descTable) set(frame int, f PageStore, pageNo util.PageID) {
	d := &t.descs[frame]
	d.file = f
	d.pageNo = pageNo
	d.pinCount = 1
	d.dirty = false
	d.valid = true
	d.referenced = true
}

// clear resets a frame to its initial invalid state. The payload bytes
// in the pool are left alone; the next load overwrites them.
func (t *descTable) clear(frame int) {
	d := &t.descs[frame]
	d.file = nil
	d.pageNo = 0
	d.pinCount = 0
	d.dirty = false
	d.valid = false
	d.referenced = false
}
