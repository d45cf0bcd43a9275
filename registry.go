package fluentmasker

import (
	"reflect"
	"sync"
)

var (
	accessors   = make(map[reflect.Type]any)
	accessorsMu sync.RWMutex
)

// cachedAccessor returns the compiled accessor for T or builds a new one.
func cachedAccessor[T any]() (*Accessor[T], error) {
	typ := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	accessorsMu.RLock()
	if cached, ok := accessors[typ]; ok {
		accessorsMu.RUnlock()
		return cached.(*Accessor[T]), nil
	}
	accessorsMu.RUnlock()

	// Slow path: build and cache with write-lock
	accessorsMu.Lock()
	defer accessorsMu.Unlock()

	// Double-check pattern
	if cached, ok := accessors[typ]; ok {
		return cached.(*Accessor[T]), nil
	}

	a, err := buildAccessor[T]()
	if err != nil {
		return nil, err
	}

	accessors[typ] = a
	return a, nil
}

// ResetAccessors clears the compiled accessor cache.
// This is primarily useful for test isolation.
func ResetAccessors() {
	accessorsMu.Lock()
	defer accessorsMu.Unlock()
	accessors = make(map[reflect.Type]any)
}
