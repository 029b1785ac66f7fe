package util

// PageID represents a unique page identifier within a file
type PageID uint64

// PageSize represents the standard page size (4KB)
const PageSize = 4096

// Options represents buffer cache configuration options
type Options struct {
	Path       string
	PageSize   int
	PoolSize   int
	SyncWrites bool
}

// DefaultOptions returns default buffer cache options
func DefaultOptions() Options {
	return Options{
		PageSize:   PageSize,
		PoolSize:   1000, // 4MB default buffer pool
		SyncWrites: false,
	}
}
