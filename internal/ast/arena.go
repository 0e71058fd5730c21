package ast

import (
	"fmt"

	"fortio.org/safecast"
)

const arenaChunk = 256

// Arena хранит элементы чанками, поэтому указатели из Get стабильны
// при последующих Allocate.
type Arena[T any] struct {
	chunks [][]T
	n      uint32
}

// NewArena creates an arena; capHint is the expected number of elements.
func NewArena[T any](capHint uint) *Arena[T] {
	chunks := int(capHint/arenaChunk) + 1
	return &Arena[T]{chunks: make([][]T, 0, chunks)}
}

// Allocate stores value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	if a.n%arenaChunk == 0 {
		a.chunks = append(a.chunks, make([]T, 0, arenaChunk))
	}
	last := len(a.chunks) - 1
	a.chunks[last] = append(a.chunks[last], value)
	next, err := safecast.Conv[uint32](uint64(a.n) + 1)
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	a.n = next
	return a.n
}

// Get returns the element at index or nil for 0 / out of range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > a.n {
		return nil
	}
	i := index - 1
	return &a.chunks[i/arenaChunk][i%arenaChunk]
}

func (a *Arena[T]) Len() uint32 {
	return a.n
}
