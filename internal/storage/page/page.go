package page

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

const (
	HEADER_SIZE = 24 // Size of PageHeader struct: PageID(8) + Checksum(8) + Flags(2) + padding(6)

	FlagDirty  uint16 = 1 << 0
	FlagPinned uint16 = 1 << 1
)

// Page is block that read/write from disk
type Page struct {
	Header PageHeader
	Data   [util.PageSize - HEADER_SIZE]byte
}

type PageHeader struct {
	PageID   util.PageID // 8 bytes
	Checksum uint64      // 8 bytes
	Flags    uint16      // 2 bytes
	_        [6]byte     // 6 bytes (padding)
}

func (h *PageHeader) SetDirtyFlag()   { h.Flags |= FlagDirty }
func (h *PageHeader) ClearDirtyFlag() { h.Flags &^= FlagDirty }
func (h *PageHeader) IsDirty() bool   { return h.Flags&FlagDirty != 0 }

func (h *PageHeader) SetPinnedFlag()   { h.Flags |= FlagPinned }
func (h *PageHeader) ClearPinnedFlag() { h.Flags &^= FlagPinned }
func (h *PageHeader) IsPinned() bool   { return h.Flags&FlagPinned != 0 }

// Serialize packs the page into a byte slice for writing.
// The checksum covers every byte after the checksum field itself.
func (p *Page) Serialize() []byte {
	buf := make([]byte, util.PageSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(p.Header.PageID))
	binary.LittleEndian.PutUint16(buf[16:18], p.Header.Flags)
	copy(buf[HEADER_SIZE:], p.Data[:])

	p.Header.Checksum = xxhash.Sum64(buf[16:])
	binary.LittleEndian.PutUint64(buf[8:16], p.Header.Checksum)

	return buf
}

// Deserialize unpacks from bytes, validates checksum
func Deserialize(data []byte) (*Page, error) {
	if len(data) != util.PageSize {
		return nil, fmt.Errorf("%w: got %d bytes", util.ErrInvalidPageSize, len(data))
	}

	p := &Page{
		Header: PageHeader{
			PageID:   util.PageID(binary.LittleEndian.Uint64(data[0:8])),
			Checksum: binary.LittleEndian.Uint64(data[8:16]),
			Flags:    binary.LittleEndian.Uint16(data[16:18]),
		},
	}
	copy(p.Data[:], data[HEADER_SIZE:])

	if sum := xxhash.Sum64(data[16:]); sum != p.Header.Checksum {
		return nil, fmt.Errorf("%w: page %d: stored %x computed %x",
			util.ErrChecksumMismatch, p.Header.PageID, p.Header.Checksum, sum)
	}

	return p, nil
}
