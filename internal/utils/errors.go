package util

import "errors"

var (
	ErrInvalidPageId    = errors.New("invalid page id")
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrPageNotFound     = errors.New("page does not exist")
	ErrPageOutOfBounds  = errors.New("page out of bounds")
	ErrPageDeleted      = errors.New("page has been deleted")
	ErrStoreClosed      = errors.New("file store is closed")

	ErrInvalidPoolSize = errors.New("invalid pool size")
	ErrOutBoundOfFrame = errors.New("frame idx out of bound")
	ErrPoolExhausted   = errors.New("all buffer frames are pinned")
	ErrPageNotPinned   = errors.New("page is not pinned")
	ErrPagePinned      = errors.New("page is still pinned")
	ErrBadBuffer       = errors.New("invalid frame still claimed by file")
	ErrPageResident    = errors.New("page already resident in buffer")
	ErrPageNotResident = errors.New("page not resident in buffer")
)
