package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bietkhonhungvandi212/buffer-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

/**
* This module is the durable page store: it reads and writes fixed-size
* pages of one data file. Page N lives at byte offset N*PageSize.
**/
type FileStore struct {
	File *os.File
	Path string

	// nextPage is one past the highest page ever allocated. Deleted
	// slots are remembered in freed and reused LIFO by AllocatePage.
	nextPage  util.PageID
	freed     map[util.PageID]struct{}
	freeOrder []util.PageID

	syncWrites bool
	closed     bool
}

func NewFileStore(path string, syncWrites bool) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return &FileStore{
		File:       f,
		Path:       path,
		nextPage:   util.PageID(info.Size() / util.PageSize),
		freed:      make(map[util.PageID]struct{}),
		syncWrites: syncWrites,
	}, nil
}

// Name returns the stable identity of this store, used as the
// file-scope key in the buffer cache.
func (fs *FileStore) Name() string {
	return filepath.Base(fs.Path)
}

/* READ FILE */
func (fs *FileStore) ReadPage(pageId util.PageID) (*page.Page, error) {
	if fs.closed {
		return nil, util.ErrStoreClosed
	}
	if err := fs.checkAllocated(pageId); err != nil {
		return nil, err
	}

	buf := make([]byte, util.PageSize)
	offset := int64(pageId) * int64(util.PageSize)
	if _, err := fs.File.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("read page %d: %w", pageId, err)
	}

	p, err := page.Deserialize(buf)
	if err != nil {
		return nil, fmt.Errorf("deserialize page %d: %w", pageId, err)
	}
	return p, nil
}

/* WRITE FILE */
func (fs *FileStore) WritePage(p *page.Page) error {
	if fs.closed {
		return util.ErrStoreClosed
	}
	if err := fs.checkAllocated(p.Header.PageID); err != nil {
		return err
	}

	offset := int64(p.Header.PageID) * int64(util.PageSize)
	if _, err := fs.File.WriteAt(p.Serialize(), offset); err != nil {
		return fmt.Errorf("write page %d: %w", p.Header.PageID, err)
	}

	if fs.syncWrites {
		if err := fs.File.Sync(); err != nil {
			return fmt.Errorf("sync after page %d: %w", p.Header.PageID, err)
		}
	}
	return nil
}

// AllocatePage creates a new empty page, reusing a freed slot when one
// exists, and returns it with its page number assigned.
func (fs *FileStore) AllocatePage() (*page.Page, error) {
	if fs.closed {
		return nil, util.ErrStoreClosed
	}

	var pageId util.PageID
	if n := len(fs.freeOrder); n > 0 {
		pageId = fs.freeOrder[n-1]
		fs.freeOrder = fs.freeOrder[:n-1]
		delete(fs.freed, pageId)
	} else {
		pageId = fs.nextPage
		fs.nextPage++
	}

	p := &page.Page{Header: page.PageHeader{PageID: pageId}}
	if err := fs.WritePage(p); err != nil {
		return nil, fmt.Errorf("materialize page %d: %w", pageId, err)
	}
	return p, nil
}

// DeletePage removes a page from the store. The slot is remembered in
// memory for reuse; the free list does not survive a reopen.
func (fs *FileStore) DeletePage(pageId util.PageID) error {
	if fs.closed {
		return util.ErrStoreClosed
	}
	if err := fs.checkAllocated(pageId); err != nil {
		return err
	}

	fs.freed[pageId] = struct{}{}
	fs.freeOrder = append(fs.freeOrder, pageId)
	return nil
}

// NumPages reports how many pages are currently allocated.
func (fs *FileStore) NumPages() int {
	return int(fs.nextPage) - len(fs.freed)
}

func (fs *FileStore) checkAllocated(pageId util.PageID) error {
	if pageId >= fs.nextPage {
		return fmt.Errorf("%w: page %d of %s", util.ErrPageNotFound, pageId, fs.Name())
	}
	if _, ok := fs.freed[pageId]; ok {
		return fmt.Errorf("%w: page %d of %s", util.ErrPageDeleted, pageId, fs.Name())
	}
	return nil
}

/**
* CLOSE FUNCTION
**/
func (fs *FileStore) Close() error {
	if fs == nil || fs.closed {
		return nil // Idempotent
	}
	fs.closed = true

	var err error
	if fs.File != nil {
		if e := fs.File.Sync(); e != nil {
			err = errors.Join(err, fmt.Errorf("sync file: %w", e))
		}
		if e := fs.File.Close(); e != nil {
			err = errors.Join(err, fmt.Errorf("close file: %w", e))
		}
		fs.File = nil
	}
	return err
}
