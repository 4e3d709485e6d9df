package bufferview

import (
	"encoding/binary"
	"unsafe"

	"github.com/pkg/math"
)

// directView addresses memory by pointer arithmetic from base.
// Each accessor validates its index once and then reads or writes memory without slice bounds checks.
type directView struct {
	base     unsafe.Pointer
	capacity int
}

// NewDirect creates a View over b using the direct backend.
// b must remain reachable while the View is in use; the View itself keeps b alive.
func NewDirect(b []byte) View {
	if len(b) == 0 {
		return directView{}
	}
	return directView{
		base:     unsafe.Pointer(&b[0]),
		capacity: len(b),
	}
}

func (directView) Backend() Backend {
	return BackendDirect
}

func (v directView) Capacity() int {
	return v.capacity
}

func (v directView) CheckIndex(index int) (int, error) {
	return checkIndex(index, v.capacity)
}

func (v directView) CheckLimit(limit int) (int, error) {
	return checkLimit(limit, v.capacity)
}

func (v directView) at(index int) *byte {
	return (*byte)(unsafe.Add(v.base, index))
}

// window returns a slice aliasing [index, index+count); the caller has validated the range.
func (v directView) window(index, count int) []byte {
	if count <= 0 {
		return nil
	}
	return unsafe.Slice(v.at(index), count)
}

func (v directView) GetByte(index int) byte {
	mustIndex(index, v.capacity)
	return *v.at(index)
}

func (v directView) PutByte(index int, value byte) {
	mustIndex(index, v.capacity)
	*v.at(index) = value
}

func (v directView) GetBytes(index int, dst []byte) int {
	mustStart(index, v.capacity)
	return copy(dst, v.window(index, math.MinInt(len(dst), v.capacity-index)))
}

func (v directView) PutBytes(index int, src []byte) int {
	mustStart(index, v.capacity)
	return copy(v.window(index, math.MinInt(len(src), v.capacity-index)), src)
}

func (v directView) GetBytesTo(index int, dst *Cursor, length int) int {
	mustStart(index, v.capacity)
	count := math.MinInt(math.MinInt(length, v.capacity-index), dst.Remaining())
	if count <= 0 {
		return 0
	}
	return dst.put(v.window(index, count))
}

func (v directView) PutBytesFrom(index int, src *Cursor, length int) int {
	mustStart(index, v.capacity)
	count := math.MinInt(math.MinInt(length, v.capacity-index), src.Remaining())
	if count <= 0 {
		return 0
	}
	return src.get(v.window(index, count))
}

func (v directView) PutUint32(index int, value uint32) {
	mustRange(index, 4, v.capacity)
	binary.BigEndian.PutUint32(v.window(index, 4), value)
}

func (v directView) Duplicate() *Cursor {
	return &Cursor{view: v}
}

func (v directView) Slice(offset, length int) (View, error) {
	if e := checkSlice(v, offset, length); e != nil {
		return nil, e
	}
	if length == 0 {
		return directView{}, nil
	}
	return directView{
		base:     unsafe.Add(v.base, offset),
		capacity: length,
	}, nil
}
