package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLru(t *testing.T) {
	lru := NewLRU[string, int](3)

	_, ok := lru.Read("a")
	assert.False(t, ok)
	lru.Write("a", 1)
	v, ok := lru.Read("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	lru.Write("a", 2)
	v, _ = lru.Read("a")
	assert.Equal(t, 2, v)
	lru.Write("b", 3)
	lru.Write("c", 4)
	assert.Equal(t, 3, lru.Len())

	// "b" is now the least recently used
	lru.Read("a")
	evicted, ok := lru.Write("d", 5)
	assert.True(t, ok)
	assert.Equal(t, 3, evicted)
	_, ok = lru.Read("b")
	assert.False(t, ok)

	v, ok = lru.Remove("c")
	assert.True(t, ok)
	assert.Equal(t, 4, v)
	_, ok = lru.Remove("c")
	assert.False(t, ok)
	assert.Equal(t, 2, lru.Len())
}

func TestLruZeroSize(t *testing.T) {
	lru := NewLRU[string, int](0)
	evicted, ok := lru.Write("a", 1)
	assert.True(t, ok)
	assert.Equal(t, 1, evicted)
	_, ok = lru.Read("a")
	assert.False(t, ok)
	assert.Equal(t, 0, lru.Len())
}
