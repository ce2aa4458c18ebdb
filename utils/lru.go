package utils

import (
	"container/list"
	"sync"
)

// Lru is a fixed capacity cache safe for concurrent use.
// A capacity of 0 keeps nothing.
type Lru[K comparable, V any] struct {
	mu   sync.Mutex
	list *list.List
	size int
	m    map[K]*list.Element
}

type entry[K comparable, V any] struct {
	k K
	v V
}

func NewLRU[K comparable, V any](size int) *Lru[K, V] {
	return &Lru[K, V]{
		list: list.New(),
		size: size,
		m:    map[K]*list.Element{},
	}
}

func (lru *Lru[K, V]) Read(key K) (V, bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	elem, exist := lru.m[key]
	if !exist {
		var zero V
		return zero, false
	}

	lru.list.MoveToFront(elem)
	return elem.Value.(*entry[K, V]).v, true
}

// Write stores data under key. When the cache overflows the least recently
// used entry is dropped and returned.
func (lru *Lru[K, V]) Write(key K, data V) (evicted V, ok bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	if elem, exist := lru.m[key]; exist {
		lru.list.MoveToFront(elem)
		elem.Value = &entry[K, V]{k: key, v: data}
		return evicted, false
	}

	lru.m[key] = lru.list.PushFront(&entry[K, V]{k: key, v: data})
	if lru.list.Len() > lru.size {
		old := lru.list.Remove(lru.list.Back()).(*entry[K, V])
		delete(lru.m, old.k)
		return old.v, true
	}
	return evicted, false
}

func (lru *Lru[K, V]) Remove(key K) (V, bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	elem, exist := lru.m[key]
	if !exist {
		var zero V
		return zero, false
	}
	delete(lru.m, key)
	lru.list.Remove(elem)
	return elem.Value.(*entry[K, V]).v, true
}

func (lru *Lru[K, V]) Len() int {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	return lru.list.Len()
}
