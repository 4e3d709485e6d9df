//go:build linux || darwin || freebsd || netbsd || openbsd

package bufferview

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// ErrClosed indicates a Region that has already been closed.
var ErrClosed = errors.New("region closed")

// Region is a block of memory mapped outside the Go heap.
// Views derived from a Region must not be used after Close.
type Region struct {
	mem  []byte
	view View
}

// Allocate maps an anonymous, zero-filled memory region.
func Allocate(capacity int) (*Region, error) {
	if capacity <= 0 {
		return nil, &BoundsError{Op: OpLimit, Index: capacity, Capacity: 0}
	}
	mem, e := unix.Mmap(-1, 0, capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if e != nil {
		return nil, fmt.Errorf("mmap(%d): %w", capacity, e)
	}
	logger.Debug("region mapped", zap.Int("capacity", capacity))
	return &Region{
		mem:  mem,
		view: New(mem),
	}, nil
}

// View returns a View covering the entire region.
func (r *Region) View() View {
	return r.view
}

// Close unmaps the region.
func (r *Region) Close() error {
	if r.mem == nil {
		return ErrClosed
	}
	mem := r.mem
	r.mem, r.view = nil, nil
	if e := unix.Munmap(mem); e != nil {
		return fmt.Errorf("munmap: %w", e)
	}
	return nil
}
