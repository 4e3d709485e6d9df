// Package bufferview provides bounds-checked views over contiguous byte regions.
//
// A View addresses bytes by absolute index within [0, Capacity()).
// Two interchangeable backends exist: a heap backend that indexes a Go slice,
// and a direct backend that addresses memory through pointer arithmetic after
// the same explicit bounds checks.
// New selects the direct backend when the capability probe succeeded at startup.
package bufferview

import (
	"github.com/emvtools/bertlv/core/logging"
)

var logger = logging.New("bufferview")

// Backend identifies a View implementation.
type Backend int

// Backend values.
const (
	BackendHeap Backend = iota
	BackendDirect
)

func (b Backend) String() string {
	switch b {
	case BackendHeap:
		return "heap"
	case BackendDirect:
		return "direct"
	}
	return "invalid"
}

// View is an indexed, capacity-bounded view over a byte region.
//
// Single-byte accessors and range copies panic with *BoundsError when given an invalid index,
// in the same way as Go slice indexing.
// Callers handling untrusted positions should validate with CheckIndex or CheckLimit first.
//
// A View is not safe for concurrent mutation.
// Mutation through one view is visible through every view and Cursor aliasing the same storage.
type View interface {
	// Backend returns the implementation kind.
	Backend() Backend

	// Capacity returns the number of addressable bytes.
	Capacity() int

	// CheckIndex returns index if 0 <= index < Capacity(), otherwise *BoundsError.
	CheckIndex(index int) (int, error)

	// CheckLimit returns limit if 0 <= limit <= Capacity(), otherwise *BoundsError.
	CheckLimit(limit int) (int, error)

	// GetByte returns the byte at index.
	GetByte(index int) byte

	// PutByte assigns the byte at index.
	PutByte(index int, value byte)

	// GetBytes copies min(len(dst), Capacity()-index) bytes starting at index into dst.
	// Returns the number of bytes copied.
	GetBytes(index int, dst []byte) int

	// PutBytes copies min(len(src), Capacity()-index) bytes from src starting at index.
	// Returns the number of bytes copied.
	PutBytes(index int, src []byte) int

	// GetBytesTo copies min(length, Capacity()-index, dst.Remaining()) bytes starting at index
	// into dst at its position, and advances dst.
	// Returns the number of bytes copied.
	GetBytesTo(index int, dst *Cursor, length int) int

	// PutBytesFrom copies min(length, Capacity()-index, src.Remaining()) bytes from src at its
	// position to index, and advances src.
	// Returns the number of bytes copied.
	PutBytesFrom(index int, src *Cursor, length int) int

	// PutUint32 writes value as 4 bytes big endian starting at index.
	PutUint32(index int, value uint32)

	// Duplicate returns an independent cursor at position zero that aliases the same storage.
	Duplicate() *Cursor

	// Slice returns a zero-copy sub-view of [offset, offset+length) with the same backend.
	Slice(offset, length int) (View, error)
}

// New creates a View over b.
// It uses the direct backend if available, otherwise the heap backend.
func New(b []byte) View {
	if hasDirect {
		return NewDirect(b)
	}
	return NewHeap(b)
}

// HasDirect reports whether New selects the direct backend.
func HasDirect() bool {
	return hasDirect
}

func checkIndex(index, capacity int) (int, error) {
	if index < 0 || index >= capacity {
		return index, &BoundsError{Op: OpIndex, Index: index, Capacity: capacity}
	}
	return index, nil
}

func checkLimit(limit, capacity int) (int, error) {
	if limit < 0 || limit > capacity {
		return limit, &BoundsError{Op: OpLimit, Index: limit, Capacity: capacity}
	}
	return limit, nil
}

func mustIndex(index, capacity int) {
	if _, e := checkIndex(index, capacity); e != nil {
		panic(e)
	}
}

// mustStart validates the start of a range copy; index == capacity is permitted and copies nothing.
func mustStart(index, capacity int) {
	if _, e := checkLimit(index, capacity); e != nil {
		panic(e)
	}
}

func mustRange(index, length, capacity int) {
	mustStart(index, capacity)
	if _, e := checkLimit(index+length, capacity); e != nil {
		panic(e)
	}
}

func checkSlice(v View, offset, length int) error {
	if offset < 0 || length < 0 {
		return &BoundsError{Op: OpLimit, Index: offset + length, Capacity: v.Capacity()}
	}
	_, e := v.CheckLimit(offset + length)
	return e
}
