package buffer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bietkhonhungvandi212/buffer-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

/*
This file is the main file of the buffer cache.
The manager keeps a fixed pool of page-sized frames between the durable
page stores below and the access methods above: a fetch returns a pinned
in-memory page, loading it from its store on a miss and reclaiming a
frame through the replacement policy when the pool is full.

Pages are identified by (store name, page number).
*/

// PageStore is what the manager needs from a durable page store.
// *file.FileStore satisfies it; tests substitute their own.
type PageStore interface {
	ReadPage(pageId util.PageID) (*page.Page, error)
	WritePage(p *page.Page) error
	AllocatePage() (*page.Page, error)
	DeletePage(pageId util.PageID) error
	Name() string
}

// Manager orchestrates the frame pool, descriptor table, page index and
// replacement policy. One mutex guards all of them: the eviction sweep
// mutates descriptors and the index while scanning, so no partial state
// may ever be visible.
type Manager struct {
	frames   []page.Page // the pool; callers get pointers into it
	table    *descTable
	index    *pageIndex
	replacer Replacer
	mu       sync.Mutex
}

// NewManager creates a manager with numFrames frames and the clock
// replacement policy.
func NewManager(numFrames int) *Manager {
	return newManager(numFrames, func(t *descTable) Replacer {
		return NewClockReplacer(t)
	})
}

// NewLRUManager creates a manager with the exact-LRU policy instead.
func NewLRUManager(numFrames int) *Manager {
	return newManager(numFrames, func(t *descTable) Replacer {
		return NewLRUReplacer(t.size())
	})
}

func newManager(numFrames int, policy func(*descTable) Replacer) *Manager {
	if numFrames <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	t := newDescTable(numFrames)
	return &Manager{
		frames:   make([]page.Page, numFrames),
		table:    t,
		index:    newPageIndex(numFrames),
		replacer: policy(t),
	}
}

// FetchPage returns the requested page pinned in memory, reading it from
// the store on a miss. Every successful fetch adds exactly one pin; the
// caller must balance it with one UnpinPage. The returned pointer aliases
// manager-owned storage and is only good while the pin is held.
func (m *Manager) FetchPage(f PageStore, pageId util.PageID) (*page.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame, ok := m.index.lookup(f, pageId); ok {
		d := m.table.get(frame)
		d.referenced = true
		d.pinCount++
		if d.pinCount == 1 {
			m.replacer.Pin(frame)
		}
		return &m.frames[frame], nil
	}

	frame, err := m.allocFrame()
	if err != nil {
		return nil, err
	}

	p, err := f.ReadPage(pageId)
	if err != nil {
		m.replacer.Release(frame)
		return nil, fmt.Errorf("fetch page %d of %s: %w", pageId, f.Name(), err)
	}
	m.frames[frame] = *p

	if err := m.index.insert(f, pageId, frame); err != nil {
		m.replacer.Release(frame)
		return nil, err
	}
	m.table.set(frame, f, pageId)
	m.replacer.Pin(frame)

	return &m.frames[frame], nil
}

// UnpinPage drops one pin from the page. A page that is not resident is
// a silent no-op: it may have been evicted since the caller fetched it.
// Unpinning a resident page whose pin count is already zero is a caller
// bug and fails with ErrPageNotPinned. The dirty mark is sticky: it is
// only ever cleared by a write-back, never by a clean unpin.
func (m *Manager) UnpinPage(f PageStore, pageId util.PageID, dirty bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.index.lookup(f, pageId)
	if !ok {
		return nil
	}

	d := m.table.get(frame)
	if d.pinCount == 0 {
		return fmt.Errorf("%w: page %d of %s", util.ErrPageNotPinned, pageId, f.Name())
	}
	d.pinCount--
	if dirty {
		d.dirty = true
	}
	if d.pinCount == 0 {
		m.replacer.Unpin(frame)
	}
	return nil
}

// NewPage allocates a fresh page in the store (the store assigns the
// page number) and returns it pinned in a frame.
func (m *Manager) NewPage(f PageStore) (*page.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := f.AllocatePage()
	if err != nil {
		return nil, fmt.Errorf("allocate page in %s: %w", f.Name(), err)
	}

	frame, err := m.allocFrame()
	if err != nil {
		return nil, err
	}
	m.frames[frame] = *p

	if err := m.index.insert(f, p.Header.PageID, frame); err != nil {
		m.replacer.Release(frame)
		return nil, err
	}
	m.table.set(frame, f, p.Header.PageID)
	m.replacer.Pin(frame)

	return &m.frames[frame], nil
}

// FlushFile writes back every dirty page of the store and releases all
// of its frames. Fails with ErrPagePinned if any page of the store is
// still in use, and ErrBadBuffer if a frame claims the store while
// marked invalid. After success no frame references the store.
func (m *Manager) FlushFile(f PageStore) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := f.Name()
	for frame := 0; frame < m.table.size(); frame++ {
		d := m.table.get(frame)
		if d.file == nil || d.file.Name() != name {
			continue
		}
		if !d.valid {
			return fmt.Errorf("%w: frame %d page %d of %s", util.ErrBadBuffer, frame, d.pageNo, name)
		}
		if d.pinCount > 0 {
			return fmt.Errorf("%w: page %d of %s in frame %d", util.ErrPagePinned, d.pageNo, name, frame)
		}

		if d.dirty {
			if err := d.file.WritePage(&m.frames[frame]); err != nil {
				return fmt.Errorf("flush page %d of %s: %w", d.pageNo, name, err)
			}
			d.dirty = false
		}
		if err := m.index.remove(d.file, d.pageNo); err != nil {
			return err
		}
		m.table.clear(frame)
		m.replacer.Release(frame)
	}
	return nil
}

// DisposePage deletes a page from the store, first releasing its frame
// if it is resident. A page that is not resident is not an error.
func (m *Manager) DisposePage(f PageStore, pageId util.PageID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame, ok := m.index.lookup(f, pageId); ok {
		if err := m.index.remove(f, pageId); err != nil {
			return err
		}
		m.table.clear(frame)
		m.replacer.Release(frame)
	}

	if err := f.DeletePage(pageId); err != nil {
		return fmt.Errorf("delete page %d of %s: %w", pageId, f.Name(), err)
	}
	return nil
}

// allocFrame obtains a reusable frame from the replacement policy,
// writing the victim back first when it is dirty and unmapping it from
// the index. The dirty bit is cleared only after the write succeeds.
func (m *Manager) allocFrame() (int, error) {
	frame, err := m.replacer.Victim()
	if err != nil {
		return -1, err
	}

	d := m.table.get(frame)
	if d.valid {
		if d.dirty {
			if err := d.file.WritePage(&m.frames[frame]); err != nil {
				m.replacer.Release(frame)
				return -1, fmt.Errorf("write back page %d of %s: %w", d.pageNo, d.file.Name(), err)
			}
			d.dirty = false
		}
		if err := m.index.remove(d.file, d.pageNo); err != nil {
			return -1, err
		}
	}
	m.table.clear(frame)
	return frame, nil
}

// Close writes back every still-dirty resident page and releases all
// frames. No write ordering across stores is guaranteed. The stores
// themselves are not closed; the manager does not own them.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs error
	for frame := 0; frame < m.table.size(); frame++ {
		d := m.table.get(frame)
		if !d.valid {
			continue
		}
		if d.dirty {
			if err := d.file.WritePage(&m.frames[frame]); err != nil {
				errs = errors.Join(errs, fmt.Errorf("write back page %d of %s: %w", d.pageNo, d.file.Name(), err))
			} else {
				d.dirty = false
			}
		}
		if err := m.index.remove(d.file, d.pageNo); err != nil {
			errs = errors.Join(errs, err)
		}
		m.table.clear(frame)
		m.replacer.Release(frame)
	}
	return errs
}
