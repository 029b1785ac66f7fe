package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bietkhonhungvandi212/buffer-db/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/buffer-db/internal/storage/file"
)

func main() {
	dir, err := os.MkdirTemp("", "bufferdb-demo")
	if err != nil {
		fmt.Fprintln(os.Stderr, "temp dir:", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	store, err := file.NewFileStore(filepath.Join(dir, "demo.dat"), false)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open store:", err)
		os.Exit(1)
	}
	defer store.Close()

	mgr := buffer.NewManager(8)
	defer mgr.Close()

	// Allocate a page, scribble on it, unpin it dirty.
	p, err := mgr.NewPage(store)
	if err != nil {
		fmt.Fprintln(os.Stderr, "new page:", err)
		os.Exit(1)
	}
	pageID := p.Header.PageID
	msg := "hello from the buffer cache"
	copy(p.Data[:], []byte(msg))
	if err := mgr.UnpinPage(store, pageID, true); err != nil {
		fmt.Fprintln(os.Stderr, "unpin:", err)
		os.Exit(1)
	}

	// Fetch it back: a hit, no disk read.
	p, err = mgr.FetchPage(store, pageID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fetch:", err)
		os.Exit(1)
	}
	fmt.Printf("page %d: %q\n", pageID, string(p.Data[:len(msg)]))
	if err := mgr.UnpinPage(store, pageID, false); err != nil {
		fmt.Fprintln(os.Stderr, "unpin:", err)
		os.Exit(1)
	}

	stats := mgr.Stats()
	fmt.Printf("frames=%d valid=%d pinned=%d dirty=%d\n",
		stats.TotalFrames, stats.ValidFrames, stats.PinnedFrames, stats.DirtyFrames)

	// Flush everything belonging to the store back to disk.
	if err := mgr.FlushFile(store); err != nil {
		fmt.Fprintln(os.Stderr, "flush:", err)
		os.Exit(1)
	}
	fmt.Printf("after flush: valid=%d\n", mgr.Stats().ValidFrames)
}
