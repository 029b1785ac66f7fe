package buffer

import (
	lru "github.com/hashicorp/golang-lru"

	util "github.com/bietkhonhungvandi212/buffer-db/internal/utils"
)

// LRUReplacer is the alternate policy: exact LRU over evictable frames.
// Frames enter the cache when their pin count drops to zero and leave
// it when pinned, so RemoveOldest always yields a legal victim.
type LRUReplacer struct {
	cache *lru.Cache
}

func NewLRUReplacer(size int) *LRUReplacer {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}

	r := &LRUReplacer{cache: c}
	// every frame starts empty, hence evictable
	for i := 0; i < size; i++ {
		c.ContainsOrAdd(i, struct{}{})
	}
	return r
}

func (r *LRUReplacer) Victim() (int, error) {
	key, _, ok := r.cache.RemoveOldest()
	if !ok {
		return -1, util.ErrPoolExhausted
	}
	return key.(int), nil
}

func (r *LRUReplacer) Pin(frame int) {
	r.cache.Remove(frame)
}

func (r *LRUReplacer) Unpin(frame int) {
	r.cache.ContainsOrAdd(frame, struct{}{})
}

func (r *LRUReplacer) Release(frame int) {
	r.cache.ContainsOrAdd(frame, struct{}{})
}

func (r *LRUReplacer) Size() int {
	return r.cache.Len()
}
