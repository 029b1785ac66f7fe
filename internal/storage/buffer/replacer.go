package buffer

// Replacer defines the contract for page replacement policies.
// It only selects frames; dirty write-back, index maintenance and
// descriptor resets stay in the manager so every policy reuses a
// frame the same way.
type Replacer interface {
	// Victim returns the next reusable frame index, or ErrPoolExhausted
	// when every frame is in active use.
	Victim() (int, error)

	// Pin marks a frame unavailable for eviction (pin count left zero).
	Pin(frame int)

	// Unpin marks a frame evictable again (pin count reached zero).
	Unpin(frame int)

	// Release marks an invalidated frame (disposed or flushed) as
	// immediately reusable.
	Release(frame int)

	// Size reports how many frames are currently victimizable.
	Size() int
}
