package bufferview

import (
	"encoding/binary"

	"github.com/pkg/math"
)

type heapView struct {
	b []byte
}

// NewHeap creates a View over b using the heap backend.
func NewHeap(b []byte) View {
	return heapView{b: b}
}

func (heapView) Backend() Backend {
	return BackendHeap
}

func (v heapView) Capacity() int {
	return len(v.b)
}

func (v heapView) CheckIndex(index int) (int, error) {
	return checkIndex(index, len(v.b))
}

func (v heapView) CheckLimit(limit int) (int, error) {
	return checkLimit(limit, len(v.b))
}

func (v heapView) GetByte(index int) byte {
	mustIndex(index, len(v.b))
	return v.b[index]
}

func (v heapView) PutByte(index int, value byte) {
	mustIndex(index, len(v.b))
	v.b[index] = value
}

func (v heapView) GetBytes(index int, dst []byte) int {
	mustStart(index, len(v.b))
	return copy(dst, v.b[index:])
}

func (v heapView) PutBytes(index int, src []byte) int {
	mustStart(index, len(v.b))
	return copy(v.b[index:], src)
}

func (v heapView) GetBytesTo(index int, dst *Cursor, length int) int {
	mustStart(index, len(v.b))
	count := math.MinInt(math.MinInt(length, len(v.b)-index), dst.Remaining())
	if count <= 0 {
		return 0
	}
	return dst.put(v.b[index : index+count])
}

func (v heapView) PutBytesFrom(index int, src *Cursor, length int) int {
	mustStart(index, len(v.b))
	count := math.MinInt(math.MinInt(length, len(v.b)-index), src.Remaining())
	if count <= 0 {
		return 0
	}
	return src.get(v.b[index : index+count])
}

func (v heapView) PutUint32(index int, value uint32) {
	mustRange(index, 4, len(v.b))
	binary.BigEndian.PutUint32(v.b[index:], value)
}

func (v heapView) Duplicate() *Cursor {
	return &Cursor{view: v}
}

func (v heapView) Slice(offset, length int) (View, error) {
	if e := checkSlice(v, offset, length); e != nil {
		return nil, e
	}
	return heapView{b: v.b[offset : offset+length : offset+length]}, nil
}
