// internal/platform/cache/cache.go

// Package cache provides a small bounded memoization cache with LRU eviction.
package cache

import (
	"container/list"
	"sync"
)

// Cache es un memo clave/valor acotado. Al llegar a capacidad se desaloja la
// entrada usada menos recientemente.
type Cache[V any] interface {
	// Get recupera un valor y lo marca como usado recientemente.
	Get(key string) (V, bool)

	// Set almacena un valor, desplazando al LRU si no queda capacidad.
	Set(key string, value V)

	// Delete elimina una entrada.
	Delete(key string)

	// Clear vacía el memo completo.
	Clear()

	// Size retorna el número actual de entradas.
	Size() int

	// Capacity retorna el máximo de entradas del memo.
	Capacity() int
}

type entry[V any] struct {
	key     string
	value   V
	element *list.Element
}

// MemoryCache implementa Cache con un map más una lista doblemente enlazada
// para el orden LRU.
type MemoryCache[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*entry[V]
	lruList  *list.List
}

// NewMemoryCache crea un memo en memoria con la capacidad indicada.
func NewMemoryCache[V any](capacity int) *MemoryCache[V] {
	if capacity <= 0 {
		capacity = 100
	}

	return &MemoryCache[V]{
		capacity: capacity,
		items:    make(map[string]*entry[V]),
		lruList:  list.New(),
	}
}

// Get recupera un valor y lo marca como usado recientemente.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.items[key]
	if !exists {
		var zero V
		return zero, false
	}

	c.lruList.MoveToFront(e.element)
	return e.value, true
}

// Set almacena un valor. Si la clave ya existe se actualiza su valor; si no
// queda capacidad se desaloja la entrada usada menos recientemente.
func (c *MemoryCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, exists := c.items[key]; exists {
		existing.value = value
		c.lruList.MoveToFront(existing.element)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictLRU()
	}

	e := &entry[V]{key: key, value: value}
	e.element = c.lruList.PushFront(e)
	c.items[key] = e
}

// Delete elimina una entrada.
func (c *MemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.items[key]; exists {
		c.deleteEntry(e)
	}
}

// Clear vacía el memo completo.
func (c *MemoryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V])
	c.lruList.Init()
}

// Size retorna el número actual de entradas.
func (c *MemoryCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity retorna el máximo de entradas del memo.
func (c *MemoryCache[V]) Capacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capacity
}

// evictLRU desaloja la entrada al fondo de la lista. Requiere c.mu tomado.
func (c *MemoryCache[V]) evictLRU() {
	element := c.lruList.Back()
	if element != nil {
		c.deleteEntry(element.Value.(*entry[V]))
	}
}

// deleteEntry elimina una entrada del map y de la lista. Requiere c.mu tomado.
func (c *MemoryCache[V]) deleteEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.lruList.Remove(e.element)
}
