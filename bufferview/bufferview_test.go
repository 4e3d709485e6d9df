package bufferview_test

import (
	"errors"
	"io"
	"testing"

	"github.com/emvtools/bertlv/bufferview"
	"github.com/emvtools/bertlv/core/testenv"
	"go4.org/must"
)

const (
	bufferCapacity = 4096
	testIndex      = 7
)

var testValue = []byte("BER Tool")

type backendCase struct {
	name string
	make func(t *testing.T) bufferview.View
}

var backendCases = []backendCase{
	{"heap", func(t *testing.T) bufferview.View {
		return bufferview.NewHeap(make([]byte, bufferCapacity))
	}},
	{"direct", func(t *testing.T) bufferview.View {
		return bufferview.NewDirect(make([]byte, bufferCapacity))
	}},
	{"factory", func(t *testing.T) bufferview.View {
		return bufferview.New(make([]byte, bufferCapacity))
	}},
	{"region", func(t *testing.T) bufferview.View {
		r, e := bufferview.Allocate(bufferCapacity)
		if e != nil {
			t.Fatal(e)
		}
		t.Cleanup(func() { must.Close(r) })
		return r.View()
	}},
}

func forEachBackend(t *testing.T, f func(t *testing.T, v bufferview.View)) {
	for _, bc := range backendCases {
		t.Run(bc.name, func(t *testing.T) { f(t, bc.make(t)) })
	}
}

func TestBackend(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	assert.Equal(bufferview.BackendHeap, bufferview.NewHeap(nil).Backend())
	assert.Equal(bufferview.BackendDirect, bufferview.NewDirect(nil).Backend())
	assert.Equal("heap", bufferview.BackendHeap.String())
	assert.Equal("direct", bufferview.BackendDirect.String())

	if bufferview.HasDirect() {
		assert.Equal(bufferview.BackendDirect, bufferview.New(nil).Backend())
	} else {
		assert.Equal(bufferview.BackendHeap, bufferview.New(nil).Backend())
	}
}

func TestBounds(t *testing.T) {
	forEachBackend(t, func(t *testing.T, v bufferview.View) {
		assert, _ := testenv.MakeAR(t)
		assert.Equal(bufferCapacity, v.Capacity())

		_, e := v.CheckLimit(bufferCapacity + 1)
		assert.ErrorIs(e, bufferview.ErrOutOfBounds)
		assert.EqualError(e, "limit is beyond capacity (l=4097; c=4096)")
		l, e := v.CheckLimit(bufferCapacity)
		assert.NoError(e)
		assert.Equal(bufferCapacity, l)
		_, e = v.CheckLimit(-1)
		assert.Error(e)

		_, e = v.CheckIndex(bufferCapacity)
		var be *bufferview.BoundsError
		if assert.ErrorAs(e, &be) {
			assert.Equal(bufferview.OpIndex, be.Op)
			assert.Equal(bufferCapacity, be.Index)
			assert.Equal(bufferCapacity, be.Capacity)
		}
		assert.EqualError(e, "index is beyond bound (i=4096; b=4095)")
		i, e := v.CheckIndex(bufferCapacity - 1)
		assert.NoError(e)
		assert.Equal(bufferCapacity-1, i)
		_, e = v.CheckIndex(-1)
		assert.Error(e)

		assert.Panics(func() { v.GetByte(bufferCapacity) })
		assert.Panics(func() { v.PutByte(-1, 0) })
		assert.Panics(func() { v.PutUint32(bufferCapacity-3, 0) })
		assert.Panics(func() { v.GetBytes(bufferCapacity+1, make([]byte, 1)) })
		assert.NotPanics(func() { v.PutUint32(bufferCapacity-4, 0) })
	})
}

func TestByte(t *testing.T) {
	forEachBackend(t, func(t *testing.T, v bufferview.View) {
		assert, _ := testenv.MakeAR(t)

		c := v.Duplicate()
		assert.NoError(c.SetPosition(testIndex))
		assert.NoError(c.WriteByte(5))
		assert.EqualValues(5, v.GetByte(testIndex))

		v.PutByte(testIndex+1, 6)
		b, e := c.ReadByte()
		assert.NoError(e)
		assert.EqualValues(6, b)
	})
}

func TestBytes(t *testing.T) {
	forEachBackend(t, func(t *testing.T, v bufferview.View) {
		assert, _ := testenv.MakeAR(t)

		assert.Equal(len(testValue), v.PutBytes(testIndex, testValue))
		c := v.Duplicate()
		assert.NoError(c.SetPosition(testIndex))
		actual := make([]byte, len(testValue))
		n, e := io.ReadFull(c, actual)
		assert.NoError(e)
		assert.Equal(len(testValue), n)
		assert.Equal(testValue, actual)

		actual = make([]byte, len(testValue))
		assert.Equal(len(testValue), v.GetBytes(testIndex, actual))
		assert.Equal(testValue, actual)
	})
}

func TestClamp(t *testing.T) {
	forEachBackend(t, func(t *testing.T, v bufferview.View) {
		assert, _ := testenv.MakeAR(t)

		// clamped by view capacity
		assert.Equal(3, v.PutBytes(bufferCapacity-3, testValue))
		dst := make([]byte, 8)
		assert.Equal(3, v.GetBytes(bufferCapacity-3, dst))
		assert.Equal(testValue[:3], dst[:3])
		assert.Equal(0, v.GetBytes(bufferCapacity, dst))

		// clamped by cursor remaining
		v.PutBytes(testIndex, testValue)
		smallMem := make([]byte, 5)
		sc := bufferview.NewHeap(smallMem).Duplicate()
		assert.NoError(sc.SetPosition(1))
		assert.Equal(4, v.GetBytesTo(testIndex, sc, len(testValue)))
		assert.Equal(0, sc.Remaining())
		assert.Equal([]byte{0, 'B', 'E', 'R', ' '}, smallMem)

		// clamped by requested length
		sc = bufferview.NewDirect(smallMem).Duplicate()
		assert.Equal(2, v.GetBytesTo(testIndex+4, sc, 2))
		assert.Equal(2, sc.Position())
		assert.Equal([]byte{'T', 'o', 'E', 'R', ' '}, smallMem)

		// PutBytesFrom clamped by source cursor remaining
		src := bufferview.NewHeap([]byte("0123456789")).Duplicate()
		assert.NoError(src.SetPosition(6))
		assert.Equal(4, v.PutBytesFrom(testIndex, src, 100))
		assert.Equal(0, src.Remaining())
		got := make([]byte, 4)
		v.GetBytes(testIndex, got)
		assert.Equal([]byte("6789"), got)

		// PutBytesFrom clamped by view capacity
		src = bufferview.NewHeap([]byte("0123456789")).Duplicate()
		assert.Equal(2, v.PutBytesFrom(bufferCapacity-2, src, 10))
		assert.Equal(2, src.Position())
		assert.EqualValues('1', v.GetByte(bufferCapacity-1))
	})
}

func TestUint32(t *testing.T) {
	forEachBackend(t, func(t *testing.T, v bufferview.View) {
		assert, _ := testenv.MakeAR(t)

		v.PutUint32(testIndex, 256)
		got := make([]byte, 4)
		v.GetBytes(testIndex, got)
		assert.Equal([]byte{0x00, 0x00, 0x01, 0x00}, got)
	})
}

func TestSlice(t *testing.T) {
	forEachBackend(t, func(t *testing.T, v bufferview.View) {
		assert, require := testenv.MakeAR(t)

		s, e := v.Slice(testIndex, len(testValue))
		require.NoError(e)
		assert.Equal(v.Backend(), s.Backend())
		assert.Equal(len(testValue), s.Capacity())

		s.PutBytes(0, testValue)
		got := make([]byte, len(testValue))
		v.GetBytes(testIndex, got)
		assert.Equal(testValue, got)

		_, e = s.CheckIndex(len(testValue))
		assert.Error(e)

		_, e = v.Slice(bufferCapacity-1, 2)
		assert.ErrorIs(e, bufferview.ErrOutOfBounds)
		_, e = v.Slice(-1, 1)
		assert.Error(e)

		empty, e := v.Slice(bufferCapacity, 0)
		require.NoError(e)
		assert.Equal(0, empty.Capacity())
	})
}

func TestCursor(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	mem := make([]byte, 4)
	c := bufferview.NewDirect(mem).Duplicate()
	n, e := c.Write([]byte{1, 2, 3})
	assert.NoError(e)
	assert.Equal(3, n)
	n, e = c.Write([]byte{4, 5})
	assert.ErrorIs(e, io.ErrShortWrite)
	assert.Equal(1, n)
	assert.Equal([]byte{1, 2, 3, 4}, mem)
	assert.ErrorIs(c.WriteByte(6), io.ErrShortWrite)

	_, e = c.ReadByte()
	assert.ErrorIs(e, io.EOF)
	_, e = c.Read(make([]byte, 1))
	assert.True(errors.Is(e, io.EOF))

	assert.Error(c.SetPosition(5))
	assert.NoError(c.SetPosition(0))
	all, e := io.ReadAll(c)
	assert.NoError(e)
	assert.Equal(mem, all)
}

func TestRegionClose(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	r, e := bufferview.Allocate(16)
	require.NoError(e)
	assert.Equal(16, r.View().Capacity())
	assert.NoError(r.Close())
	assert.ErrorIs(r.Close(), bufferview.ErrClosed)

	_, e = bufferview.Allocate(0)
	assert.Error(e)
}
