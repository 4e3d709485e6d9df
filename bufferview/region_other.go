//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package bufferview

import "errors"

// ErrClosed indicates a Region that has already been closed.
var ErrClosed = errors.New("region closed")

// Region is a block of memory; on this platform it lives on the Go heap.
type Region struct {
	mem  []byte
	view View
}

// Allocate allocates a zero-filled memory region.
func Allocate(capacity int) (*Region, error) {
	if capacity <= 0 {
		return nil, &BoundsError{Op: OpLimit, Index: capacity, Capacity: 0}
	}
	mem := make([]byte, capacity)
	return &Region{mem: mem, view: New(mem)}, nil
}

// View returns a View covering the entire region.
func (r *Region) View() View {
	return r.view
}

// Close releases the region.
func (r *Region) Close() error {
	if r.mem == nil {
		return ErrClosed
	}
	r.mem, r.view = nil, nil
	return nil
}
