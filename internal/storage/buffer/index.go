package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

// tag identifies a resident page: the owning store's name plus the
// page number within it.
type tag struct {
	file   string
	pageNo util.PageID
}

// pageIndex maps (file, pageNo) to the frame holding that page.
// At most one frame is ever mapped for a given page.
type pageIndex struct {
	entries map[tag]int
}

func newPageIndex(size int) *pageIndex {
	return &pageIndex{entries: make(map[tag]int, size)}
}

// lookup returns the frame holding the page. A miss is a normal
// control-flow branch, not an error.
func (ix *pageIndex) lookup(f PageStore, pageNo util.PageID) (int, bool) {
	frame, ok := ix.entries[tag{file: f.Name(), pageNo: pageNo}]
	return frame, ok
}

func (ix *pageIndex) insert(f PageStore, pageNo util.PageID, frame int) error {
	k := tag{file: f.Name(), pageNo: pageNo}
	if old, ok := ix.entries[k]; ok {
		return fmt.Errorf("%w: page %d of %s already in frame %d", util.ErrPageResident, pageNo, f.Name(), old)
	}
	ix.entries[k] = frame
	return nil
}

func (ix *pageIndex) remove(f PageStore, pageNo util.PageID) error {
	k := tag{file: f.Name(), pageNo: pageNo}
	if _, ok := ix.entries[k]; !ok {
		return fmt.Errorf("%w: page %d of %s", util.ErrPageNotResident, pageNo, f.Name())
	}
	delete(ix.entries, k)
	return nil
}

func (ix *pageIndex) len() int {
	return len(ix.entries)
}
